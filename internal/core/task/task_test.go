package task

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

type recorder struct {
	steps []string
}

func (r *recorder) mark(name string) Step[*recorder] {
	return func(ctx *recorder) error {
		ctx.steps = append(ctx.steps, name)
		return nil
	}
}

func TestTaskWaitSuspendsAcrossPolls(t *testing.T) {
	s := NewScheduler[*recorder](zaptest.NewLogger(t))
	rec := &recorder{}
	tk := New[*recorder]("shoot").
		Do(rec.mark("fire")).
		Wait(0.25).
		Do(rec.mark("ready"))

	if err := s.Start(1, tk); err != nil {
		t.Fatalf("start: %v", err)
	}
	if len(rec.steps) != 0 {
		t.Fatal("steps must not run before the first poll")
	}

	dt := 1.0 / 60
	now := 0.0
	s.Poll(rec, now)
	if len(rec.steps) != 1 || rec.steps[0] != "fire" {
		t.Fatalf("expected [fire], got %v", rec.steps)
	}

	frames := 0
	for !tk.Done() {
		now += dt
		frames++
		s.Poll(rec, now)
		if frames > 60 {
			t.Fatal("task did not finish")
		}
	}
	if now < 0.25 {
		t.Fatalf("task resumed early at %.3f", now)
	}
	if len(rec.steps) != 2 || rec.steps[1] != "ready" {
		t.Fatalf("expected [fire ready], got %v", rec.steps)
	}
	if s.Len() != 0 {
		t.Fatalf("finished task must be dropped, %d left", s.Len())
	}
}

func TestOneTaskPerOwner(t *testing.T) {
	s := NewScheduler[*recorder](zaptest.NewLogger(t))
	rec := &recorder{}
	first := New[*recorder]("a").Wait(1)
	if err := s.Start(7, first); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(7, New[*recorder]("b")); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if err := s.Start(8, New[*recorder]("c")); err != nil {
		t.Fatalf("other owners are independent: %v", err)
	}

	s.Poll(rec, 0)
	s.Poll(rec, 1)
	if s.Active(7) {
		t.Fatal("owner 7 should be free after its task finished")
	}
	if err := s.Start(7, New[*recorder]("d")); err != nil {
		t.Fatalf("restart: %v", err)
	}
}

func TestStepErrorAbortsTask(t *testing.T) {
	s := NewScheduler[*recorder](zaptest.NewLogger(t))
	rec := &recorder{}
	boom := errors.New("stale")
	tk := New[*recorder]("death").
		Do(func(*recorder) error { return boom }).
		Do(rec.mark("unreachable"))
	if err := s.Start(1, tk); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Poll(rec, 0)

	if !tk.Done() {
		t.Fatal("expected task to finish on error")
	}
	if !errors.Is(tk.Err(), boom) {
		t.Fatalf("expected wrapped step error, got %v", tk.Err())
	}
	if len(rec.steps) != 0 {
		t.Fatalf("no step should run after an error, got %v", rec.steps)
	}
}

func TestZeroWaitYieldsOnePoll(t *testing.T) {
	s := NewScheduler[*recorder](nil)
	rec := &recorder{}
	tk := New[*recorder]("yield").Do(rec.mark("a")).Wait(0).Do(rec.mark("b"))
	if err := s.Start(1, tk); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Poll(rec, 0)
	if len(rec.steps) != 1 {
		t.Fatalf("expected one step before yielding, got %v", rec.steps)
	}
	s.Poll(rec, 0)
	if len(rec.steps) != 2 || !tk.Done() {
		t.Fatalf("expected task to finish on second poll, got %v", rec.steps)
	}
}
