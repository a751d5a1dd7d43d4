package system

import "time"

// Phase defines execution ordering within a single frame.
type Phase int

const (
	PhaseBoundary Phase = iota // 0: flush removals queued last frame, resume background tasks
	PhaseInput                 // 1: quit and window-level input
	PhaseUpdate                // 2: scene update pass
	PhaseEvents                // 3: deliver events emitted this frame
)

func (p Phase) String() string {
	switch p {
	case PhaseBoundary:
		return "boundary"
	case PhaseInput:
		return "input"
	case PhaseUpdate:
		return "update"
	case PhaseEvents:
		return "events"
	}
	return "unknown"
}

// System is the interface every frame system implements. A non-nil error
// stops the frame and is returned to the game loop.
type System interface {
	Phase() Phase
	Update(dt time.Duration) error
}
