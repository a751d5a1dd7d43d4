package tilemap

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render/rendertest"
)

const sample = `
name: test
width: 4
height: 3
tile_width: 32
tile_height: 16
tileset:
  image: tileset.png
  columns: 2
layers:
  - name: terrain
    rows:
      - [0, 0, 0, 0]
      - [0, 3, 0, 0]
      - [1, 1, 2, 1]
  - name: decor
    rows:
      - [0, 0, 0, 4]
      - [0, 0, 0, 0]
      - [0, 0, 0, 0]
`

func mustParse(t *testing.T, src string) *Map {
	t.Helper()
	m, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return m
}

func TestParse(t *testing.T) {
	m := mustParse(t, sample)
	if m.Width != 4 || m.Height != 3 || m.TileWidth != 32 || m.TileHeight != 16 {
		t.Fatalf("unexpected dimensions %+v", m)
	}
	if got := m.Bounds(); got != geom.R(0, 0, 128, 48) {
		t.Fatalf("unexpected bounds %v", got)
	}
	if _, err := m.Layer("decor"); err != nil {
		t.Fatalf("decor: %v", err)
	}
	if _, err := m.Layer("nope"); !errors.Is(err, ErrUnknownLayer) {
		t.Fatalf("expected ErrUnknownLayer, got %v", err)
	}
}

func TestParseReportsEveryProblem(t *testing.T) {
	src := `
width: 2
height: 2
tile_width: 0
tile_height: 16
tileset:
  columns: 1
layers:
  - name: a
    rows:
      - [0, -1]
  - name: a
    rows:
      - [0, 0]
      - [0, 0, 0]
`
	_, err := Parse([]byte(src))
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{
		"invalid tile size",
		"tileset image is empty",
		"1 rows, want 2",
		"negative tile id",
		"duplicate layer",
		"3 cells, want 2",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func TestTilesAndSolidity(t *testing.T) {
	m := mustParse(t, sample)
	l, _ := m.Layer("terrain")

	var n, filled int
	for tile := range l.Tiles() {
		n++
		if !tile.Empty() {
			filled++
		}
	}
	if n != 12 || filled != 5 {
		t.Fatalf("expected 12 cells with 5 filled, got %d/%d", n, filled)
	}

	solid := l.Solidity()
	want := []bool{
		false, false, false, false,
		false, true, false, false,
		true, true, true, true,
	}
	if len(solid) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(solid))
	}
	for i := range want {
		if solid[i] != want[i] {
			t.Fatalf("cell %d: expected %v", i, want[i])
		}
	}

	tile, ok := m.TileAt(l, geom.V(40, 20))
	if !ok || tile.X != 1 || tile.Y != 1 || tile.ID != 3 {
		t.Fatalf("unexpected tile %+v ok=%v", tile, ok)
	}
	if _, ok := m.TileAt(l, geom.V(-1, 0)); ok {
		t.Fatal("expected no tile outside the map")
	}
}

func TestDrawLayerClipsToView(t *testing.T) {
	m := mustParse(t, sample)
	l, _ := m.Layer("terrain")
	canvas := rendertest.NewCanvas(128, 48)
	tex := &rendertest.Texture{W: 64, H: 32}

	m.DrawLayer(canvas, tex, l, m.Bounds())
	if len(canvas.Textures) != 5 {
		t.Fatalf("expected 5 tiles drawn, got %d", len(canvas.Textures))
	}
	// id 3 is the first tile of the second tileset row
	d := canvas.Textures[0]
	if d.X != 32 || d.Y != 16 || *d.Opts.Source != geom.R(0, 16, 32, 16) {
		t.Fatalf("unexpected first draw %+v source %v", d, *d.Opts.Source)
	}

	canvas.Reset()
	m.DrawLayer(canvas, tex, l, geom.R(30, 10, 10, 10))
	if len(canvas.Textures) != 1 {
		t.Fatalf("expected only the tile at (1,1) inside a small view, got %d", len(canvas.Textures))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Name != "test" {
		t.Fatalf("unexpected name %q", m.Name)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
