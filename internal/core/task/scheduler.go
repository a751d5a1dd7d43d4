package task

import (
	"fmt"

	"go.uber.org/zap"
)

// Owner identifies the entity a task belongs to.
type Owner uint64

type running[C any] struct {
	owner Owner
	task  *Task[C]
}

// Scheduler resumes background tasks once per poll, in start order. At most
// one task runs per owner. The frame loop polls it at the frame boundary,
// never in the middle of an update pass.
type Scheduler[C any] struct {
	tasks []running[C]
	now   float64
	log   *zap.Logger
}

func NewScheduler[C any](log *zap.Logger) *Scheduler[C] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler[C]{
		tasks: make([]running[C], 0, 8),
		log:   log,
	}
}

// Start registers t for owner. The task's first steps run at the next Poll.
func (s *Scheduler[C]) Start(owner Owner, t *Task[C]) error {
	if s.Active(owner) {
		return fmt.Errorf("start %s for owner %d: %w", t.Name(), owner, ErrBusy)
	}
	s.tasks = append(s.tasks, running[C]{owner: owner, task: t})
	s.log.Debug("task started", zap.String("task", t.Name()), zap.Uint64("owner", uint64(owner)))
	return nil
}

// Active reports whether owner has an unfinished task.
func (s *Scheduler[C]) Active(owner Owner) bool {
	for _, r := range s.tasks {
		if r.owner == owner && !r.task.Done() {
			return true
		}
	}
	return false
}

func (s *Scheduler[C]) Len() int     { return len(s.tasks) }
func (s *Scheduler[C]) Now() float64 { return s.now }

// Poll advances the clock to now and resumes every task once. Tasks started
// by a step during this poll first run at the next poll.
func (s *Scheduler[C]) Poll(ctx C, now float64) {
	s.now = now
	n := len(s.tasks)
	for i := 0; i < n; i++ {
		t := s.tasks[i].task
		t.resume(ctx, now)
		if t.Done() {
			if err := t.Err(); err != nil {
				s.log.Warn("task aborted",
					zap.String("task", t.Name()),
					zap.Uint64("owner", uint64(s.tasks[i].owner)),
					zap.Error(err),
				)
			} else {
				s.log.Debug("task finished", zap.String("task", t.Name()))
			}
		}
	}

	kept := s.tasks[:0]
	for _, r := range s.tasks {
		if !r.task.Done() {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = running[C]{}
	}
	s.tasks = kept
}
