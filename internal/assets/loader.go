package assets

import (
	"context"
	"image"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quadcopter/quadcopter/internal/collision"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/render"
	"github.com/quadcopter/quadcopter/internal/tilemap"
)

// loadSteps is the number of progress increments a full load makes:
// copter image, map description, tileset image.
const loadSteps = 3

// Loader reads and decodes assets in the background. The game loop polls
// Progress and Done each frame, then calls Finish on its own goroutine to
// upload textures and build the collision world.
type Loader struct {
	cfg  config.AssetsConfig
	log  *zap.Logger
	done chan struct{}
	step atomic.Int32

	// written by the load goroutine before done is closed
	copter  image.Image
	tileset image.Image
	tmap    *tilemap.Map
	err     error
}

// StartLoader begins loading the assets named by cfg.
func StartLoader(ctx context.Context, cfg config.AssetsConfig, log *zap.Logger) *Loader {
	l := &Loader{
		cfg:  cfg,
		log:  log.Named("assets"),
		done: make(chan struct{}),
	}
	go l.run(ctx)
	return l
}

func (l *Loader) run(ctx context.Context) {
	defer close(l.done)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	copterPath := filepath.Join(l.cfg.Dir, l.cfg.Copter)
	g.Go(func() error {
		img, err := l.decode(ctx, "copter", copterPath)
		l.copter = img
		return err
	})
	g.Go(func() error {
		mapPath := filepath.Join(l.cfg.Dir, l.cfg.Map)
		m, err := tilemap.Load(mapPath)
		if err != nil {
			return &LoadError{Asset: "map", Path: mapPath, Err: err}
		}
		l.tmap = m
		l.advance("map", mapPath)

		tilesetPath := filepath.Join(filepath.Dir(mapPath), m.Tileset.Image)
		img, err := l.decode(ctx, "tileset", tilesetPath)
		l.tileset = img
		return err
	})
	l.err = g.Wait()

	if l.err != nil {
		l.log.Error("asset loading failed", zap.Error(l.err))
		return
	}
	l.log.Info("assets loaded", zap.Duration("elapsed", time.Since(start)))
}

func (l *Loader) decode(ctx context.Context, asset, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LoadError{Asset: asset, Path: path, Err: err}
	}
	img, err := DecodeImage(path)
	if err != nil {
		return nil, &LoadError{Asset: asset, Path: path, Err: err}
	}
	l.advance(asset, path)
	return img, nil
}

func (l *Loader) advance(asset, path string) {
	n := l.step.Add(1)
	l.log.Debug("asset loaded", zap.String("asset", asset), zap.String("path", path), zap.Int32("step", n))
}

// Progress returns the completed fraction of the load, 0..1.
func (l *Loader) Progress() float64 {
	return float64(l.step.Load()) / loadSteps
}

// Done reports whether the background load has finished, successfully or not.
func (l *Loader) Done() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the background load finishes and returns its error.
func (l *Loader) Wait() error {
	<-l.done
	return l.err
}

// Finish uploads the decoded images through factory and builds the
// collision world from the terrain layer. It blocks until loading is done.
func (l *Loader) Finish(factory render.TextureFactory) (*Resources, error) {
	if err := l.Wait(); err != nil {
		return nil, err
	}
	mapPath := filepath.Join(l.cfg.Dir, l.cfg.Map)
	terrain, err := l.tmap.Layer(l.cfg.TerrainLayer)
	if err != nil {
		return nil, &LoadError{Asset: "map", Path: mapPath, Err: err}
	}
	world, err := collision.New(
		terrain.Solidity(),
		float64(l.tmap.TileWidth), float64(l.tmap.TileHeight),
		l.tmap.Width,
	)
	if err != nil {
		return nil, &LoadError{Asset: "map", Path: mapPath, Err: err}
	}

	return &Resources{
		Copter:  factory.NewTexture(l.copter),
		Tileset: factory.NewTexture(l.tileset),
		Map:     l.tmap,
		Terrain: terrain,
		World:   world,
	}, nil
}
