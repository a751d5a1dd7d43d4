// Package game holds the scene nodes of the helicopter game and the frame
// loop that drives them.
package game

import (
	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/core/task"
	"github.com/quadcopter/quadcopter/internal/render"
)

// Context is passed to every node call and every background task step.
// It replaces global engine state: nodes reach the scene, the resource
// store and the platform only through it.
type Context struct {
	Scene  *scene.Scene[*Context]
	Store  *assets.Store
	Input  render.Input
	Tasks  *task.Scheduler[*Context]
	Bus    *event.Bus
	Config *config.Config
	Log    *zap.Logger

	// Canvas is only set during the draw pass.
	Canvas render.Canvas

	Time  float64 // game seconds since the first frame
	Frame uint64

	// ScreenW and ScreenH are the current layout size in pixels.
	ScreenW, ScreenH int

	// View is the camera transform published by the Camera node during the
	// update pass. It is the zero Transform until the camera first resolves
	// the player.
	View render.Transform
}

// Aspect returns the layout aspect ratio, width over height.
func (c *Context) Aspect() float64 {
	if c.ScreenH <= 0 {
		return 1
	}
	return float64(c.ScreenW) / float64(c.ScreenH)
}
