package game

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/collision"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/render"
	"github.com/quadcopter/quadcopter/internal/render/rendertest"
	"github.com/quadcopter/quadcopter/internal/tilemap"
)

const (
	testCols = 40
	testRows = 20
	testTile = 32
	testDt   = 0.05
)

// testMap is a testCols×testRows room with solid walls and a single
// solid block at column 20, row 4.
func testMap() *tilemap.Map {
	rows := make([][]int, testRows)
	for y := range rows {
		rows[y] = make([]int, testCols)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == testCols-1 || y == testRows-1 {
				rows[y][x] = 1
			}
		}
	}
	rows[4][20] = 2
	return &tilemap.Map{
		Name:       "test",
		Width:      testCols,
		Height:     testRows,
		TileWidth:  testTile,
		TileHeight: testTile,
		Tileset:    tilemap.Tileset{Image: "tiles.png", Columns: 2},
		Layers:     []*tilemap.Layer{{Name: "terrain", Rows: rows}},
	}
}

func testResources(t *testing.T) *assets.Resources {
	t.Helper()
	m := testMap()
	terrain := m.Layers[0]
	world, err := collision.New(terrain.Solidity(), testTile, testTile, m.Width)
	if err != nil {
		t.Fatalf("collision world: %v", err)
	}
	return &assets.Resources{
		Copter:  &rendertest.Texture{Name: "copter", W: 95, H: 32},
		Tileset: &rendertest.Texture{Name: "tiles", W: 64, H: 32},
		Map:     m,
		Terrain: terrain,
		World:   world,
	}
}

type harness struct {
	t     *testing.T
	world *World
	input *rendertest.Input
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	input := rendertest.NewInput(testDt)
	w, err := NewWorld(cfg, testResources(t), input, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return &harness{t: t, world: w, input: input}
}

// step runs n frames and clears the just-pressed keys after each.
func (h *harness) step(n int) {
	h.t.Helper()
	for i := 0; i < n; i++ {
		if err := h.world.Step(testDt); err != nil {
			h.t.Fatalf("frame %d: %v", h.world.ctx.Frame, err)
		}
		h.input.EndFrame()
	}
}

func (h *harness) player() *Player {
	h.t.Helper()
	p, err := h.world.Player()
	if err != nil {
		h.t.Fatalf("player: %v", err)
	}
	return p
}

func (h *harness) projectiles() *Projectiles {
	h.t.Helper()
	ps, err := h.world.Projectiles()
	if err != nil {
		h.t.Fatalf("projectiles: %v", err)
	}
	return ps
}

func (h *harness) press(k render.Key) { h.input.Press(k) }
