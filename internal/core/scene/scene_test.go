package scene

import (
	"errors"
	"testing"
)

// frame records the order in which nodes were visited.
type frame struct {
	log []string
}

type probe struct {
	name    string
	kind    Kind
	updates int
	onTick  func(ctx *frame)
}

func (p *probe) Kind() Kind { return p.kind }

func (p *probe) Update(ctx *frame, _ float64) {
	p.updates++
	ctx.log = append(ctx.log, "u:"+p.name)
	if p.onTick != nil {
		p.onTick(ctx)
	}
}

func (p *probe) Draw(ctx *frame) {
	ctx.log = append(ctx.log, "d:"+p.name)
}

type other struct{ probe }

func TestInsertAndGet(t *testing.T) {
	s := New[*frame]()
	p := &probe{name: "player", kind: KindPlayer}
	h := Insert(s, p)
	if h.IsZero() {
		t.Fatal("expected non-zero handle")
	}

	got, err := Get(s, h)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != p {
		t.Fatalf("expected %p, got %p", p, got)
	}
}

func TestUpdateThenDrawInRegistrationOrder(t *testing.T) {
	s := New[*frame]()
	Insert(s, &probe{name: "bg", kind: KindBackground})
	Insert(s, &probe{name: "player", kind: KindPlayer})
	Insert(s, &probe{name: "camera", kind: KindCamera})

	ctx := &frame{}
	s.Update(ctx, 1.0/60)
	s.Draw(ctx)

	want := []string{"u:bg", "u:player", "u:camera", "d:bg", "d:player", "d:camera"}
	if len(ctx.log) != len(want) {
		t.Fatalf("expected %v, got %v", want, ctx.log)
	}
	for i := range want {
		if ctx.log[i] != want[i] {
			t.Fatalf("step %d: expected %s, got %s", i, want[i], ctx.log[i])
		}
	}
}

func TestRemoveTakesEffectAtFlush(t *testing.T) {
	s := New[*frame]()
	a := &probe{name: "a", kind: KindPlayer}
	b := &probe{name: "b", kind: KindCamera}
	ha := Insert(s, a)
	Insert(s, b)

	// a removes itself mid-pass; b must still run and a stays resolvable
	a.onTick = func(*frame) {
		if err := s.Remove(ha.ID()); err != nil {
			t.Fatalf("remove: %v", err)
		}
	}
	ctx := &frame{}
	s.Update(ctx, 0)
	if b.updates != 1 {
		t.Fatalf("expected b to update once, got %d", b.updates)
	}
	if _, err := Get(s, ha); err != nil {
		t.Fatalf("removal must not apply before flush: %v", err)
	}
	s.Draw(ctx)

	s.Flush()
	if _, err := Get(s, ha); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("expected ErrStaleHandle, got %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 live node, got %d", s.Len())
	}

	ctx = &frame{}
	s.Update(ctx, 0)
	if len(ctx.log) != 1 || ctx.log[0] != "u:b" {
		t.Fatalf("expected only b to update, got %v", ctx.log)
	}
}

func TestStaleHandleNeverAliasesReusedSlot(t *testing.T) {
	s := New[*frame]()
	old := Insert(s, &probe{name: "old", kind: KindPlayer})
	if err := s.Remove(old.ID()); err != nil {
		t.Fatalf("remove: %v", err)
	}
	s.Flush()

	fresh := &probe{name: "fresh", kind: KindPlayer}
	h := Insert(s, fresh)
	if h.ID().Index() != old.ID().Index() {
		t.Fatalf("expected slot reuse, got index %d vs %d", h.ID().Index(), old.ID().Index())
	}
	if h.ID().Generation() == old.ID().Generation() {
		t.Fatal("expected generation bump on reuse")
	}

	if _, err := Get(s, old); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("expected ErrStaleHandle for old handle, got %v", err)
	}
	got, err := Get(s, h)
	if err != nil || got != fresh {
		t.Fatalf("expected fresh node, got %v (%v)", got, err)
	}
}

func TestRemoveStaleHandle(t *testing.T) {
	s := New[*frame]()
	h := Insert(s, &probe{name: "a", kind: KindPlayer})
	if err := s.Remove(h.ID()); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	// queuing twice is harmless until the flush
	if err := s.Remove(h.ID()); err != nil {
		t.Fatalf("second remove before flush: %v", err)
	}
	if s.Pending() != 1 {
		t.Fatalf("expected 1 pending removal, got %d", s.Pending())
	}
	s.Flush()
	if err := s.Remove(h.ID()); !errors.Is(err, ErrStaleHandle) {
		t.Fatalf("expected ErrStaleHandle, got %v", err)
	}
}

func TestFirstByType(t *testing.T) {
	s := New[*frame]()
	Insert(s, &probe{name: "bg", kind: KindBackground})
	want := &other{probe{name: "bullets", kind: KindProjectiles}}
	Insert(s, want)

	_, got, err := First[*other](s)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if got != want {
		t.Fatalf("expected %p, got %p", want, got)
	}

	id, err := s.FirstOfKind(KindProjectiles)
	if err != nil {
		t.Fatalf("first of kind: %v", err)
	}
	if !s.Alive(id) {
		t.Fatal("expected live id")
	}
}

func TestFirstNotFound(t *testing.T) {
	s := New[*frame]()
	Insert(s, &probe{name: "bg", kind: KindBackground})

	if _, _, err := First[*other](s); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.FirstOfKind(KindCamera); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertDuringPassJoinsNextPass(t *testing.T) {
	s := New[*frame]()
	spawned := &probe{name: "late", kind: KindCamera}
	spawner := &probe{name: "spawner", kind: KindPlayer}
	spawner.onTick = func(*frame) {
		if spawner.updates == 1 {
			Insert(s, spawned)
		}
	}
	Insert(s, spawner)

	s.Update(&frame{}, 0)
	if spawned.updates != 0 {
		t.Fatalf("node inserted mid-pass must not update in the same pass, got %d", spawned.updates)
	}
	s.Update(&frame{}, 0)
	if spawned.updates != 1 {
		t.Fatalf("expected late node to update on the next pass, got %d", spawned.updates)
	}
}

func TestInsertUnknownKindPanics(t *testing.T) {
	s := New[*frame]()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown kind")
		}
	}()
	Insert(s, &probe{name: "bad", kind: Kind(99)})
}

func TestPoolGenerations(t *testing.T) {
	p := NewPool()
	a := p.Create()
	if a.IsZero() {
		t.Fatal("first id must not be zero")
	}
	if !p.Alive(a) {
		t.Fatal("expected alive")
	}
	if !p.Destroy(a) {
		t.Fatal("expected destroy to succeed")
	}
	if p.Destroy(a) {
		t.Fatal("destroying a stale id must report false")
	}
	if p.Alive(a) {
		t.Fatal("expected dead after destroy")
	}
	b := p.Create()
	if b.Index() != a.Index() || b.Generation() != a.Generation()+1 {
		t.Fatalf("expected reuse with bumped generation, got %s after %s", b, a)
	}
}
