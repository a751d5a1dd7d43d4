package event

import "github.com/quadcopter/quadcopter/internal/geom"

// ShotFired is emitted when the player spawns a projectile.
type ShotFired struct {
	Origin      geom.Vec2
	FacingRight bool
}

// RetireReason says why a projectile left the world.
type RetireReason int

const (
	RetireExpired RetireReason = iota
	RetireTerrain
	RetirePlayerHit
)

func (r RetireReason) String() string {
	switch r {
	case RetireExpired:
		return "expired"
	case RetireTerrain:
		return "terrain"
	case RetirePlayerHit:
		return "player_hit"
	}
	return "unknown"
}

// ProjectileRetired is emitted once per removed projectile.
type ProjectileRetired struct {
	Pos    geom.Vec2
	Reason RetireReason
}

// PlayerHit is emitted when a projectile reaches the player's hit box.
type PlayerHit struct {
	Pos       geom.Vec2
	FromRight bool
}

// PlayerDied is emitted by the death task once the player is marked dead.
type PlayerDied struct {
	Pos geom.Vec2
}
