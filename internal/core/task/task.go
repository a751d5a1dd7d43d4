package task

import (
	"errors"
	"fmt"
)

// ErrBusy is returned by Start when the owner already runs a task.
var ErrBusy = errors.New("owner already runs a task")

// Step is one resumable unit of a task. A non-nil error aborts the task.
type Step[C any] func(ctx C) error

type opKind uint8

const (
	opDo opKind = iota
	opWait
)

type op[C any] struct {
	kind opKind
	step Step[C]
	wait float64
}

// Task is a cooperatively scheduled sequence of steps. Waits suspend the
// task until the scheduler clock reaches the deadline; they never block
// the frame loop.
type Task[C any] struct {
	name     string
	ops      []op[C]
	pc       int
	wakeAt   float64
	waiting  bool
	finished bool
	err      error
}

func New[C any](name string) *Task[C] {
	return &Task[C]{name: name}
}

// Do appends a step that runs when the task is next resumed.
func (t *Task[C]) Do(step Step[C]) *Task[C] {
	t.ops = append(t.ops, op[C]{kind: opDo, step: step})
	return t
}

// Wait appends a suspension point of the given duration in seconds.
func (t *Task[C]) Wait(seconds float64) *Task[C] {
	t.ops = append(t.ops, op[C]{kind: opWait, wait: seconds})
	return t
}

func (t *Task[C]) Name() string    { return t.name }
func (t *Task[C]) Done() bool      { return t.finished }
func (t *Task[C]) Err() error      { return t.err }
func (t *Task[C]) WakeAt() float64 { return t.wakeAt }

// resume runs steps until the task suspends or finishes. A wait of zero
// seconds still yields to the next poll.
func (t *Task[C]) resume(ctx C, now float64) {
	if t.finished {
		return
	}
	if t.waiting {
		if now < t.wakeAt {
			return
		}
		t.waiting = false
	}
	for t.pc < len(t.ops) {
		o := t.ops[t.pc]
		t.pc++
		switch o.kind {
		case opDo:
			if err := o.step(ctx); err != nil {
				t.err = fmt.Errorf("task %s step %d: %w", t.name, t.pc-1, err)
				t.finished = true
				return
			}
		case opWait:
			t.wakeAt = now + o.wait
			t.waiting = true
			return
		}
	}
	t.finished = true
}
