package game

import (
	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/core/event"
)

// Stats counts gameplay events for the debug overlay.
type Stats struct {
	ShotsFired int
	Retired    map[event.RetireReason]int
	PlayerHits int
	Deaths     int
}

func newStats(bus *event.Bus, log *zap.Logger) *Stats {
	s := &Stats{Retired: make(map[event.RetireReason]int)}
	event.Subscribe(bus, func(event.ShotFired) { s.ShotsFired++ })
	event.Subscribe(bus, func(e event.ProjectileRetired) {
		s.Retired[e.Reason]++
		log.Debug("projectile retired", zap.Stringer("reason", e.Reason))
	})
	event.Subscribe(bus, func(event.PlayerHit) { s.PlayerHits++ })
	event.Subscribe(bus, func(event.PlayerDied) { s.Deaths++ })
	return s
}
