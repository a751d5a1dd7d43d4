package game

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/core/scene"
)

var backgroundColor = color.RGBA{0xc8, 0xc8, 0xc8, 0xff}

// Background clears the frame.
type Background struct{}

func (*Background) Kind() scene.Kind { return scene.KindBackground }

func (*Background) Update(*Context, float64) {}

func (*Background) Draw(ctx *Context) { ctx.Canvas.Clear(backgroundColor) }

// Terrain draws the terrain layer of the tile map inside the camera view.
type Terrain struct{}

func (*Terrain) Kind() scene.Kind { return scene.KindTerrain }

func (*Terrain) Update(*Context, float64) {}

func (*Terrain) Draw(ctx *Context) {
	err := ctx.Store.With(func(res *assets.Resources) error {
		w, h := ctx.Canvas.Size()
		view := res.Map.Bounds()
		if !ctx.View.IsZero() {
			view = ctx.View.Visible(float64(w), float64(h))
		}
		res.Map.DrawLayer(ctx.Canvas, res.Tileset, res.Terrain, view)
		return nil
	})
	if err != nil {
		ctx.Log.Error("draw terrain", zap.Error(err))
	}
}
