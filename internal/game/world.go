package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	coresys "github.com/quadcopter/quadcopter/internal/core/system"
	"github.com/quadcopter/quadcopter/internal/core/task"
	"github.com/quadcopter/quadcopter/internal/render"
)

// World is the running game once assets are loaded: the scene, its frame
// systems and the shared context.
type World struct {
	ctx    *Context
	runner *coresys.Runner
	stats  *Stats
	player scene.Handle[*Player]
	proj   scene.Handle[*Projectiles]
	camera scene.Handle[*Camera]
}

// NewWorld builds the scene in draw order: background, terrain, player,
// projectiles, camera.
func NewWorld(cfg *config.Config, res *assets.Resources, input render.Input, log *zap.Logger) (*World, error) {
	bus := event.NewBus()
	ctx := &Context{
		Scene:   scene.New[*Context](),
		Store:   assets.NewStore(res),
		Input:   input,
		Tasks:   task.NewScheduler[*Context](log.Named("tasks")),
		Bus:     bus,
		Config:  cfg,
		Log:     log,
		ScreenW: cfg.Window.Width,
		ScreenH: cfg.Window.Height,
	}

	w := &World{
		ctx:    ctx,
		runner: coresys.NewRunner(),
		stats:  newStats(bus, log),
	}

	scene.Insert(ctx.Scene, &Background{})
	scene.Insert(ctx.Scene, &Terrain{})
	player, err := SpawnPlayer(ctx)
	if err != nil {
		return nil, fmt.Errorf("spawn player: %w", err)
	}
	w.player = player
	w.proj = scene.Insert(ctx.Scene, NewProjectiles(player, cfg.Projectile))
	w.camera = scene.Insert(ctx.Scene, NewCamera(player, cfg.Camera.ViewportHeight))

	w.runner.Register(&boundarySystem{ctx: ctx})
	w.runner.Register(&quitSystem{ctx: ctx})
	w.runner.Register(&sceneSystem{ctx: ctx})
	w.runner.Register(&eventSystem{ctx: ctx})

	log.Info("world ready",
		zap.Int("nodes", ctx.Scene.Len()),
		zap.Stringer("player", player.ID()),
	)
	return w, nil
}

func (w *World) Context() *Context { return w.ctx }
func (w *World) Stats() *Stats     { return w.stats }

// Player returns the player node, or an ErrStaleHandle error once it was removed.
func (w *World) Player() (*Player, error) { return scene.Get(w.ctx.Scene, w.player) }

func (w *World) Projectiles() (*Projectiles, error) { return scene.Get(w.ctx.Scene, w.proj) }

func (w *World) Camera() (*Camera, error) { return scene.Get(w.ctx.Scene, w.camera) }

// Resize records the layout size the camera derives its aspect ratio from.
func (w *World) Resize(width, height int) {
	w.ctx.ScreenW, w.ctx.ScreenH = width, height
}

// Step runs one frame of dt seconds.
func (w *World) Step(dt float64) error {
	return w.runner.Tick(time.Duration(dt * float64(time.Second)))
}

// Draw runs the draw pass in registration order through the camera view,
// then the debug overlay in screen space.
func (w *World) Draw(canvas render.Canvas) {
	ctx := w.ctx
	ctx.Canvas = canvas
	defer func() { ctx.Canvas = nil }()

	sw, sh := canvas.Size()
	if ctx.View.IsZero() {
		canvas.SetTransform(render.ScreenTransform(float64(sw), float64(sh)))
	} else {
		canvas.SetTransform(ctx.View)
	}
	ctx.Scene.Draw(ctx)

	canvas.SetTransform(render.ScreenTransform(float64(sw), float64(sh)))
	if ctx.Config.Debug.Overlay {
		drawHUD(canvas, w)
	}
}
