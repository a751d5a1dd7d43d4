package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/game"
	"github.com/quadcopter/quadcopter/internal/render/ebiten"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/quadcopter.toml"
	if p := os.Getenv("QUADCOPTER_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("config", cfgPath),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int("tps", cfg.Window.TPS),
	)

	// 3. Start loading assets in the background; the window opens on the
	// loading screen while this runs.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	loader := assets.StartLoader(ctx, cfg.Assets, log)

	// 4. Open the window and run the frame loop
	engine := ebiten.NewEngine()
	engine.SetWindowTitle(cfg.Window.Title)
	engine.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	engine.SetWindowResizable(cfg.Window.Resizable)
	engine.SetTPS(cfg.Window.TPS)

	g := game.New(cfg, log, ebiten.NewPlatform(), ebiten.NewTextureFactory(), loader)
	if err := engine.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}

	if w := g.World(); w != nil {
		s := w.Stats()
		log.Info("game over",
			zap.Uint64("frames", w.Context().Frame),
			zap.Int("shots", s.ShotsFired),
			zap.Int("player_hits", s.PlayerHits),
			zap.Int("deaths", s.Deaths),
		)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
