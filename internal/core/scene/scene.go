package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle outlived the node it referred to.
	ErrStaleHandle = errors.New("stale handle")
	// ErrNotFound is returned by type and kind lookups that match no live node.
	ErrNotFound = errors.New("node not found")
)

// Kind tags the closed set of node variants a scene may hold.
type Kind uint8

const (
	KindBackground Kind = iota + 1
	KindTerrain
	KindPlayer
	KindProjectiles
	KindCamera
)

var kindNames = [...]string{
	KindBackground:  "background",
	KindTerrain:     "terrain",
	KindPlayer:      "player",
	KindProjectiles: "projectiles",
	KindCamera:      "camera",
}

func (k Kind) Valid() bool { return k >= KindBackground && k <= KindCamera }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Node is the capability every scene member implements. C is the per-frame
// context threaded through every call.
type Node[C any] interface {
	Kind() Kind
	Update(ctx C, dt float64)
	Draw(ctx C)
}

// Handle is a typed, generation-checked reference to a node.
type Handle[T any] struct {
	id ID
}

func (h Handle[T]) ID() ID       { return h.id }
func (h Handle[T]) IsZero() bool { return h.id.IsZero() }

func (id ID) String() string {
	return fmt.Sprintf("%d@%d", id.Index(), id.Generation())
}

type entry[C any] struct {
	node   Node[C]
	kind   Kind
	queued bool
}

// Scene owns an ordered set of nodes. Update and Draw visit live nodes in
// registration order. Removal is deferred to Flush, which the frame loop
// calls at the frame boundary, so a pass never observes a half-removed node.
type Scene[C any] struct {
	pool    *Pool
	entries []entry[C]
	order   []ID
	queue   []ID
}

func New[C any]() *Scene[C] {
	return &Scene[C]{
		pool:    NewPool(),
		entries: make([]entry[C], 0, 16),
		order:   make([]ID, 0, 16),
		queue:   make([]ID, 0, 8),
	}
}

// Insert stores node and returns a handle to it. Nodes inserted while a pass
// is running join from the next pass.
func Insert[C any, T Node[C]](s *Scene[C], node T) Handle[T] {
	kind := node.Kind()
	if !kind.Valid() {
		panic(fmt.Sprintf("scene: insert of unknown node %s", kind))
	}
	id := s.pool.Create()
	idx := int(id.Index())
	for len(s.entries) <= idx {
		s.entries = append(s.entries, entry[C]{})
	}
	s.entries[idx] = entry[C]{node: node, kind: kind}
	s.order = append(s.order, id)
	return Handle[T]{id: id}
}

// Get resolves h. It fails with ErrStaleHandle once the node's removal has
// taken effect, even if the slot has since been reused.
func Get[T any, C any](s *Scene[C], h Handle[T]) (T, error) {
	var zero T
	if !s.pool.Alive(h.id) {
		return zero, fmt.Errorf("get %s: %w", h.id, ErrStaleHandle)
	}
	node, ok := s.entries[h.id.Index()].node.(T)
	if !ok {
		return zero, fmt.Errorf("get %s: %w", h.id, ErrStaleHandle)
	}
	return node, nil
}

// First returns the first live node of type T in registration order.
func First[T any, C any](s *Scene[C]) (Handle[T], T, error) {
	for _, id := range s.order {
		if node, ok := s.entries[id.Index()].node.(T); ok {
			return Handle[T]{id: id}, node, nil
		}
	}
	var zero T
	return Handle[T]{}, zero, fmt.Errorf("first %T: %w", zero, ErrNotFound)
}

// FirstOfKind returns the ID of the first live node tagged kind.
func (s *Scene[C]) FirstOfKind(kind Kind) (ID, error) {
	for _, id := range s.order {
		if s.entries[id.Index()].kind == kind {
			return id, nil
		}
	}
	return 0, fmt.Errorf("first %s: %w", kind, ErrNotFound)
}

// Remove queues the node behind id for destruction at the next Flush.
func (s *Scene[C]) Remove(id ID) error {
	if !s.pool.Alive(id) {
		return fmt.Errorf("remove %s: %w", id, ErrStaleHandle)
	}
	e := &s.entries[id.Index()]
	if !e.queued {
		e.queued = true
		s.queue = append(s.queue, id)
	}
	return nil
}

func (s *Scene[C]) Alive(id ID) bool { return s.pool.Alive(id) }

// Len returns the number of live nodes, including ones queued for removal.
func (s *Scene[C]) Len() int { return len(s.order) }

// Pending returns the number of removals waiting for Flush.
func (s *Scene[C]) Pending() int { return len(s.queue) }

func (s *Scene[C]) Update(ctx C, dt float64) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		node := s.entries[s.order[i].Index()].node
		node.Update(ctx, dt)
	}
}

func (s *Scene[C]) Draw(ctx C) {
	n := len(s.order)
	for i := 0; i < n; i++ {
		node := s.entries[s.order[i].Index()].node
		node.Draw(ctx)
	}
}

// Flush destroys all queued nodes, invalidating every handle to them.
func (s *Scene[C]) Flush() {
	if len(s.queue) == 0 {
		return
	}
	for _, id := range s.queue {
		if s.pool.Destroy(id) {
			s.entries[id.Index()] = entry[C]{}
		}
	}
	s.queue = s.queue[:0]

	kept := s.order[:0]
	for _, id := range s.order {
		if s.pool.Alive(id) {
			kept = append(kept, id)
		}
	}
	for i := len(kept); i < len(s.order); i++ {
		s.order[i] = 0
	}
	s.order = kept
}
