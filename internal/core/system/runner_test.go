package system

import (
	"errors"
	"testing"
	"time"
)

type recordSystem struct {
	name  string
	phase Phase
	log   *[]string
	err   error
}

func (s *recordSystem) Phase() Phase { return s.phase }

func (s *recordSystem) Update(time.Duration) error {
	*s.log = append(*s.log, s.name)
	return s.err
}

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordSystem{name: "events", phase: PhaseEvents, log: &log})
	r.Register(&recordSystem{name: "update-a", phase: PhaseUpdate, log: &log})
	r.Register(&recordSystem{name: "boundary", phase: PhaseBoundary, log: &log})
	r.Register(&recordSystem{name: "update-b", phase: PhaseUpdate, log: &log})

	if err := r.Tick(time.Second / 60); err != nil {
		t.Fatalf("tick: %v", err)
	}
	want := []string{"boundary", "update-a", "update-b", "events"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, log)
		}
	}
}

func TestRunnerStopsOnError(t *testing.T) {
	var log []string
	stop := errors.New("quit")
	r := NewRunner()
	r.Register(&recordSystem{name: "input", phase: PhaseInput, log: &log, err: stop})
	r.Register(&recordSystem{name: "update", phase: PhaseUpdate, log: &log})

	if err := r.Tick(0); !errors.Is(err, stop) {
		t.Fatalf("expected quit error, got %v", err)
	}
	if len(log) != 1 {
		t.Fatalf("later phases must not run, got %v", log)
	}
}

func TestTickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordSystem{name: "boundary", phase: PhaseBoundary, log: &log})
	r.Register(&recordSystem{name: "update", phase: PhaseUpdate, log: &log})

	if err := r.TickPhase(PhaseUpdate, 0); err != nil {
		t.Fatalf("tick phase: %v", err)
	}
	if len(log) != 1 || log[0] != "update" {
		t.Fatalf("expected only update, got %v", log)
	}
}
