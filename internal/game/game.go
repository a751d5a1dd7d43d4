package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/render"
)

// Game implements render.Game. It shows a loading screen until the assets
// are in, then runs the World one frame per Update.
type Game struct {
	cfg      *config.Config
	log      *zap.Logger
	platform render.Platform
	factory  render.TextureFactory
	loader   *assets.Loader
	world    *World

	width, height int
}

func New(cfg *config.Config, log *zap.Logger, platform render.Platform, factory render.TextureFactory, loader *assets.Loader) *Game {
	return &Game{
		cfg:      cfg,
		log:      log,
		platform: platform,
		factory:  factory,
		loader:   loader,
		width:    cfg.Window.Width,
		height:   cfg.Window.Height,
	}
}

// World returns the running world, or nil while assets are loading.
func (g *Game) World() *World { return g.world }

func (g *Game) Update() error {
	if g.world != nil {
		return g.world.Step(g.platform.FrameTime())
	}
	if g.platform.IsKeyJustPressed(render.KeyQuit) {
		return render.ErrQuit
	}
	if !g.loader.Done() {
		return nil
	}

	res, err := g.loader.Finish(g.factory)
	if err != nil {
		return fmt.Errorf("load assets: %w", err)
	}
	w, err := NewWorld(g.cfg, res, g.platform, g.log)
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	w.Resize(g.width, g.height)
	g.world = w
	return nil
}

func (g *Game) Draw(screen render.Canvas) {
	if g.world == nil {
		drawLoading(screen, g.loader.Progress())
		return
	}
	g.world.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.width, g.height = outsideWidth, outsideHeight
		if g.world != nil {
			g.world.Resize(outsideWidth, outsideHeight)
		}
	}
	return g.width, g.height
}
