package assets

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/quadcopter/quadcopter/internal/collision"
	"github.com/quadcopter/quadcopter/internal/render"
	"github.com/quadcopter/quadcopter/internal/tilemap"
)

// ErrBorrowed is returned by Store.Borrow while the resources are already lent out.
var ErrBorrowed = errors.New("resource store already borrowed")

// LoadError reports an asset that could not be loaded. It is fatal: the
// game does not start without every asset.
type LoadError struct {
	Asset string
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s from %s: %v", e.Asset, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Resources is everything shared between nodes: textures, the tile map and
// the collision world built from its terrain layer.
type Resources struct {
	Copter  render.Texture
	Tileset render.Texture
	Map     *tilemap.Map
	Terrain *tilemap.Layer
	World   *collision.World
}

// Store lends Resources to one caller at a time.
type Store struct {
	res      *Resources
	borrowed atomic.Bool
}

func NewStore(res *Resources) *Store {
	return &Store{res: res}
}

// Borrow hands out the resources until release is called. A second Borrow
// before release fails with ErrBorrowed. release is safe to call twice.
func (s *Store) Borrow() (res *Resources, release func(), err error) {
	if !s.borrowed.CompareAndSwap(false, true) {
		return nil, nil, ErrBorrowed
	}
	var once sync.Once
	return s.res, func() { once.Do(func() { s.borrowed.Store(false) }) }, nil
}

// With borrows the resources for the duration of fn.
func (s *Store) With(fn func(res *Resources) error) error {
	res, release, err := s.Borrow()
	if err != nil {
		return err
	}
	defer release()
	return fn(res)
}
