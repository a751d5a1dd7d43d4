package game

import (
	"time"

	coresys "github.com/quadcopter/quadcopter/internal/core/system"
	"github.com/quadcopter/quadcopter/internal/render"
)

// boundarySystem runs between frames: removals queued during the last
// frame take effect, the clock advances and background tasks resume.
type boundarySystem struct {
	ctx *Context
}

func (s *boundarySystem) Phase() coresys.Phase { return coresys.PhaseBoundary }

func (s *boundarySystem) Update(dt time.Duration) error {
	s.ctx.Scene.Flush()
	s.ctx.Time += dt.Seconds()
	s.ctx.Frame++
	s.ctx.Tasks.Poll(s.ctx, s.ctx.Time)
	return nil
}

// quitSystem ends the game loop on the quit key.
type quitSystem struct {
	ctx *Context
}

func (s *quitSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *quitSystem) Update(time.Duration) error {
	if s.ctx.Input.IsKeyJustPressed(render.KeyQuit) {
		s.ctx.Log.Info("quit requested")
		return render.ErrQuit
	}
	return nil
}

// sceneSystem runs the update pass over every node.
type sceneSystem struct {
	ctx *Context
}

func (s *sceneSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *sceneSystem) Update(dt time.Duration) error {
	s.ctx.Scene.Update(s.ctx, dt.Seconds())
	return nil
}

// eventSystem delivers the events emitted during this frame.
type eventSystem struct {
	ctx *Context
}

func (s *eventSystem) Phase() coresys.Phase { return coresys.PhaseEvents }

func (s *eventSystem) Update(time.Duration) error {
	s.ctx.Bus.Flush()
	return nil
}
