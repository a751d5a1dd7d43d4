package game

import (
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
)

// Camera follows the player with a fixed world-space viewport height.
type Camera struct {
	player         scene.Handle[*Player]
	viewportHeight float64
	transform      render.Transform
}

func NewCamera(player scene.Handle[*Player], viewportHeight float64) *Camera {
	return &Camera{player: player, viewportHeight: viewportHeight}
}

func (c *Camera) Kind() scene.Kind { return scene.KindCamera }

// Transform returns the last computed view transform.
func (c *Camera) Transform() render.Transform { return c.transform }

// Update recomputes the transform from the player's position and publishes
// it on the context. When the player is gone the previous transform stays.
func (c *Camera) Update(ctx *Context, _ float64) {
	if p, err := scene.Get(ctx.Scene, c.player); err == nil {
		viewportWidth := c.viewportHeight * ctx.Aspect()
		c.transform = render.Transform{
			Target: p.Pos(),
			Zoom:   geom.V(2/viewportWidth, -2/c.viewportHeight),
		}
	}
	ctx.View = c.transform
}

func (c *Camera) Draw(*Context) {}
