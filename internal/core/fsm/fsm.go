package fsm

import (
	"errors"
	"fmt"

	"github.com/quadcopter/quadcopter/internal/core/task"
)

// StateID identifies a state in a Table.
type StateID int

// State bundles the optional per-frame update and the optional entry task
// factory of one state.
type State[T, C any] struct {
	Name   string
	Update func(owner T, ctx C, dt float64)
	Task   func(owner T) *task.Task[C]
}

// Table is an immutable state table shared by every machine built from it.
type Table[T, C any] struct {
	initial StateID
	states  map[StateID]State[T, C]
}

func NewTable[T, C any](initial StateID, states map[StateID]State[T, C]) (*Table[T, C], error) {
	if _, ok := states[initial]; !ok {
		return nil, fmt.Errorf("initial state %d not in table", initial)
	}
	copied := make(map[StateID]State[T, C], len(states))
	for id, st := range states {
		copied[id] = st
	}
	return &Table[T, C]{initial: initial, states: copied}, nil
}

func (t *Table[T, C]) Initial() StateID { return t.initial }

func (t *Table[T, C]) Lookup(id StateID) (State[T, C], bool) {
	st, ok := t.states[id]
	return st, ok
}

// Name returns the display name of id, or its number when unnamed.
func (t *Table[T, C]) Name(id StateID) string {
	if st, ok := t.states[id]; ok && st.Name != "" {
		return st.Name
	}
	return fmt.Sprintf("state(%d)", int(id))
}

// Machine tracks the current state of one owner. Transitions requested with
// Set are applied at the start of the next Update, mirroring how the frame
// loop only observes state at frame granularity.
type Machine[T, C any] struct {
	table    *Table[T, C]
	current  StateID
	next     StateID
	hasNext  bool
	deferred *task.Task[C]
}

func NewMachine[T, C any](table *Table[T, C]) *Machine[T, C] {
	return &Machine[T, C]{
		table:   table,
		current: table.initial,
		next:    table.initial,
		hasNext: true,
	}
}

// Set requests a transition to id. The last request before Update wins.
func (m *Machine[T, C]) Set(id StateID) {
	m.next = id
	m.hasNext = true
}

// State returns the current state. A pending transition is not reported
// until Update applies it.
func (m *Machine[T, C]) State() StateID { return m.current }

// Pending reports the requested but not yet applied state, if any.
func (m *Machine[T, C]) Pending() (StateID, bool) { return m.next, m.hasNext }

func (m *Machine[T, C]) Table() *Table[T, C] { return m.table }

// Update applies a pending transition, starting the entered state's task on
// sched under key, and then runs the current state's update function. When
// the owner still runs an earlier task, the new one is held back and started
// on the first Update after the earlier one finishes.
func (m *Machine[T, C]) Update(owner T, ctx C, sched *task.Scheduler[C], key task.Owner, dt float64) error {
	if m.hasNext {
		m.hasNext = false
		st, ok := m.table.Lookup(m.next)
		if !ok {
			return fmt.Errorf("transition to unknown state %d", int(m.next))
		}
		m.current = m.next
		m.deferred = nil
		if st.Task != nil {
			m.deferred = st.Task(owner)
		}
	}

	if m.deferred != nil {
		err := sched.Start(key, m.deferred)
		switch {
		case err == nil:
			m.deferred = nil
		case !errors.Is(err, task.ErrBusy):
			return err
		}
	}

	st, _ := m.table.Lookup(m.current)
	if st.Update != nil {
		st.Update(owner, ctx, dt)
	}
	return nil
}

// Deferred reports whether an entry task is waiting for the owner's task
// slot to free up.
func (m *Machine[T, C]) Deferred() bool { return m.deferred != nil }
