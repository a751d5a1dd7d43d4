package game

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/geom"
)

var projectileColor = color.RGBA{0xff, 0x33, 0x33, 0xff}

// Projectile is a single shot. Lived and Lifetime are in seconds.
type Projectile struct {
	Pos      geom.Vec2
	Vel      geom.Vec2
	Lived    float64
	Lifetime float64
}

// Projectiles owns every live projectile in one compact slice.
type Projectiles struct {
	player scene.Handle[*Player]
	cfg    config.ProjectileConfig
	items  []Projectile
}

func NewProjectiles(player scene.Handle[*Player], cfg config.ProjectileConfig) *Projectiles {
	return &Projectiles{
		player: player,
		cfg:    cfg,
		items:  make([]Projectile, 0, 200),
	}
}

func (ps *Projectiles) Kind() scene.Kind { return scene.KindProjectiles }

func (ps *Projectiles) Len() int { return len(ps.items) }

// Each calls fn for every live projectile in spawn order.
func (ps *Projectiles) Each(fn func(Projectile)) {
	for _, p := range ps.items {
		fn(p)
	}
}

// Spawn fires a projectile from the muzzle of a copter at origin.
func (ps *Projectiles) Spawn(origin geom.Vec2, facingRight bool) Projectile {
	dir := geom.V(-1, 0)
	if facingRight {
		dir = geom.V(1, 0)
	}
	p := Projectile{
		Pos: origin.
			Add(geom.V(ps.cfg.MuzzleOffsetX, ps.cfg.MuzzleOffsetY)).
			Add(dir.Scale(ps.cfg.MuzzleDistance)),
		Vel:      dir.Scale(ps.cfg.Speed),
		Lifetime: ps.cfg.Lifetime.Seconds(),
	}
	ps.items = append(ps.items, p)
	return p
}

// Update advances every projectile, then drops the ones that hit the
// player, hit terrain or outlived their lifetime, in a single pass.
func (ps *Projectiles) Update(ctx *Context, dt float64) {
	for i := range ps.items {
		ps.items[i].Pos = ps.items[i].Pos.Add(ps.items[i].Vel.Scale(dt))
		ps.items[i].Lived += dt
	}

	// a stale player handle only disables hit detection
	player, _ := scene.Get(ctx.Scene, ps.player)
	armTime := ps.cfg.ArmTime.Seconds()

	err := ctx.Store.With(func(res *assets.Resources) error {
		kept := ps.items[:0]
		for _, p := range ps.items {
			reason, retire := ps.retire(p, player, res, armTime)
			if !retire {
				kept = append(kept, p)
				continue
			}
			event.Emit(ctx.Bus, event.ProjectileRetired{Pos: p.Pos, Reason: reason})
			if reason == event.RetirePlayerHit {
				player.Damage(ctx, p.Pos.X > player.pos.X+player.cfg.HitWidth/2)
			}
		}
		clear(ps.items[len(kept):])
		ps.items = kept
		return nil
	})
	if err != nil {
		ctx.Log.Error("projectile update", zap.Error(err))
	}
}

func (ps *Projectiles) retire(p Projectile, player *Player, res *assets.Resources, armTime float64) (event.RetireReason, bool) {
	switch {
	case player != nil && p.Lived >= armTime && player.HitRect().Contains(p.Pos):
		return event.RetirePlayerHit, true
	case res.World.SolidAt(p.Pos):
		return event.RetireTerrain, true
	case p.Lived >= p.Lifetime:
		return event.RetireExpired, true
	}
	return 0, false
}

func (ps *Projectiles) Draw(ctx *Context) {
	for _, p := range ps.items {
		ctx.Canvas.FillCircle(p.Pos.X, p.Pos.Y, ps.cfg.Radius, projectileColor)
	}
}
