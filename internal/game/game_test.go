package game

import (
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/render"
	"github.com/quadcopter/quadcopter/internal/render/rendertest"
)

const gameMap = `
name: small
width: 10
height: 8
tile_width: 32
tile_height: 32
tileset:
  image: tiles.png
  columns: 1
layers:
  - name: terrain
    rows:
      - [1, 1, 1, 1, 1, 1, 1, 1, 1, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 0, 0, 0, 0, 0, 0, 0, 0, 1]
      - [1, 1, 1, 1, 1, 1, 1, 1, 1, 1]
`

func writeTestAssets(t *testing.T) config.AssetsConfig {
	t.Helper()
	dir := t.TempDir()
	for name, size := range map[string][2]int{"heli.png": {95, 32}, "tiles.png": {32, 32}} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, size[0], size[1]))); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	if err := os.WriteFile(filepath.Join(dir, "map.yaml"), []byte(gameMap), 0o644); err != nil {
		t.Fatal(err)
	}
	return config.AssetsConfig{Dir: dir, Copter: "heli.png", Map: "map.yaml", TerrainLayer: "terrain"}
}

func newTestGame(t *testing.T, cfg *config.Config) (*Game, *assets.Loader, *rendertest.Input) {
	t.Helper()
	log := zaptest.NewLogger(t)
	loader := assets.StartLoader(context.Background(), cfg.Assets, log)
	input := rendertest.NewInput(testDt)
	return New(cfg, log, input, &rendertest.Factory{}, loader), loader, input
}

func TestGameLoadsThenRuns(t *testing.T) {
	cfg := config.Default()
	cfg.Assets = writeTestAssets(t)
	g, loader, _ := newTestGame(t, cfg)

	canvas := rendertest.NewCanvas(1024, 768)
	g.Draw(canvas)
	if len(canvas.Texts) != 1 || !strings.HasPrefix(canvas.Texts[0].Text, "Loading") {
		t.Fatalf("expected the loading screen, got %+v", canvas.Texts)
	}

	if err := loader.Wait(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := g.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}
	w := g.World()
	if w == nil {
		t.Fatal("expected the world to be built once loading finished")
	}

	kinds := []scene.Kind{scene.KindBackground, scene.KindTerrain, scene.KindPlayer, scene.KindProjectiles, scene.KindCamera}
	var last uint32
	for _, k := range kinds {
		id, err := w.Context().Scene.FirstOfKind(k)
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if id.Index() < last {
			t.Fatalf("%s registered out of order", k)
		}
		last = id.Index()
	}

	for i := 0; i < 3; i++ {
		if err := g.Update(); err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
	}
	if w.Context().Frame != 3 {
		t.Fatalf("expected 3 frames, got %d", w.Context().Frame)
	}

	canvas.Reset()
	g.Draw(canvas)
	if len(canvas.Textures) == 0 {
		t.Fatal("expected terrain and copter draws")
	}
}

func TestGameFailsOnMissingAsset(t *testing.T) {
	cfg := config.Default()
	cfg.Assets = writeTestAssets(t)
	cfg.Assets.Map = "nope.yaml"
	g, loader, _ := newTestGame(t, cfg)

	_ = loader.Wait()
	err := g.Update()
	var le *assets.LoadError
	if !errors.As(err, &le) || le.Asset != "map" {
		t.Fatalf("expected a map LoadError, got %v", err)
	}
	if g.World() != nil {
		t.Fatal("no world may be built after a failed load")
	}
}

func TestGameQuits(t *testing.T) {
	cfg := config.Default()
	cfg.Assets = writeTestAssets(t)
	g, loader, input := newTestGame(t, cfg)
	if err := loader.Wait(); err != nil {
		t.Fatal(err)
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}

	input.Press(render.KeyQuit)
	if err := g.Update(); !errors.Is(err, render.ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
}

func TestGameLayoutResizesCamera(t *testing.T) {
	cfg := config.Default()
	cfg.Assets = writeTestAssets(t)
	g, loader, _ := newTestGame(t, cfg)

	if w, h := g.Layout(0, 0); w != 1024 || h != 768 {
		t.Fatalf("expected the configured size, got %dx%d", w, h)
	}
	if err := loader.Wait(); err != nil {
		t.Fatal(err)
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	g.Layout(640, 640)
	if got := g.World().Context().Aspect(); got != 1 {
		t.Fatalf("expected aspect 1, got %v", got)
	}
}

func TestDebugOverlay(t *testing.T) {
	cfg := config.Default()
	cfg.Debug.Overlay = true
	h := newHarness(t, cfg)
	h.step(1)

	canvas := rendertest.NewCanvas(1024, 768)
	h.world.Draw(canvas)
	var found bool
	for _, line := range canvas.Texts {
		if line.Text == "state normal" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the player state in the overlay, got %+v", canvas.Texts)
	}
}
