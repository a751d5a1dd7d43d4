package game

import (
	"image/color"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/assets"
	"github.com/quadcopter/quadcopter/internal/collision"
	"github.com/quadcopter/quadcopter/internal/config"
	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/core/fsm"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/core/task"
	"github.com/quadcopter/quadcopter/internal/geom"
	"github.com/quadcopter/quadcopter/internal/render"
	"github.com/quadcopter/quadcopter/internal/tilemap"
)

var copterTint = color.RGBA{0xa0, 0xa0, 0xa0, 0xff}

// Player is the helicopter. Its position always comes from the collision
// world; the state machine layers shooting and dying on top of movement.
type Player struct {
	self     scene.Handle[*Player]
	cfg      config.PlayerConfig
	collider collision.ActorID
	machine  *fsm.Machine[*Player, *Context]

	pos         geom.Vec2
	speed       geom.Vec2
	facingRight bool
	dead        bool
	shots       int

	lastTile tilemap.Tile
	hasTile  bool
}

// SpawnPlayer registers a collider for the player and inserts it into the scene.
func SpawnPlayer(ctx *Context) (scene.Handle[*Player], error) {
	cfg := ctx.Config.Player
	p := &Player{
		cfg:         cfg,
		machine:     fsm.NewMachine(playerStates),
		pos:         geom.V(cfg.SpawnX, cfg.SpawnY),
		facingRight: true,
	}
	err := ctx.Store.With(func(res *assets.Resources) error {
		p.collider = res.World.AddActor(p.pos, cfg.Width, cfg.Height)
		p.pos = res.World.ActorPos(p.collider)
		return nil
	})
	if err != nil {
		return scene.Handle[*Player]{}, err
	}
	p.self = scene.Insert(ctx.Scene, p)
	return p.self, nil
}

func (p *Player) Kind() scene.Kind { return scene.KindPlayer }

func (p *Player) Pos() geom.Vec2                { return p.pos }
func (p *Player) Speed() geom.Vec2              { return p.speed }
func (p *Player) FacingRight() bool             { return p.facingRight }
func (p *Player) Dead() bool                    { return p.dead }
func (p *Player) Shots() int                    { return p.shots }
func (p *Player) State() fsm.StateID            { return p.machine.State() }
func (p *Player) Handle() scene.Handle[*Player] { return p.self }

// StateName returns the display name of the current state.
func (p *Player) StateName() string { return playerStates.Name(p.machine.State()) }

// HitRect is the area in which projectiles damage the player.
func (p *Player) HitRect() geom.Rect {
	return geom.R(p.pos.X, p.pos.Y, p.cfg.HitWidth, p.cfg.HitHeight)
}

func (p *Player) owner() task.Owner { return task.Owner(p.self.ID()) }

// Kill requests the Death state. Only Normal and Shoot can die; the request
// is ignored in every other state and when a death is already pending.
func (p *Player) Kill(fromRight bool) bool {
	if next, ok := p.machine.Pending(); ok && (next == StateDeath || next == StateAftermath) {
		return false
	}
	switch p.machine.State() {
	case StateNormal, StateShoot:
	default:
		return false
	}
	p.machine.Set(StateDeath)
	return true
}

// Damage is the hook projectiles call when they hit the player.
func (p *Player) Damage(ctx *Context, fromRight bool) {
	event.Emit(ctx.Bus, event.PlayerHit{Pos: p.pos, FromRight: fromRight})
	if p.Kill(fromRight) {
		ctx.Log.Info("player hit", zap.Bool("from_right", fromRight))
	}
}

func (p *Player) Update(ctx *Context, dt float64) {
	err := ctx.Store.With(func(res *assets.Resources) error {
		p.pos = res.World.ActorPos(p.collider)
		if p.dead || p.machine.State() == StateAftermath {
			return nil
		}
		p.move(ctx, res.World, dt)
		if ctx.Config.Debug.LogTiles {
			p.logTile(ctx, res)
		}
		return nil
	})
	if err != nil {
		ctx.Log.Error("player update", zap.Error(err))
		return
	}

	if p.dead && p.machine.State() != StateAftermath {
		p.machine.Set(StateAftermath)
	}
	if err := p.machine.Update(p, ctx, ctx.Tasks, p.owner(), dt); err != nil {
		ctx.Log.Error("player state machine", zap.Error(err))
	}
}

// move applies input to the speed and moves the collider. An axis blocked
// on either side loses its speed before input is applied.
func (p *Player) move(ctx *Context, world *collision.World, dt float64) {
	top := world.CollideCheck(p.collider, p.pos.Add(geom.V(0, -1)))
	bottom := world.CollideCheck(p.collider, p.pos.Add(geom.V(0, 1)))
	right := world.CollideCheck(p.collider, p.pos.Add(geom.V(1, 0)))
	left := world.CollideCheck(p.collider, p.pos.Add(geom.V(-1, 0)))

	if top || bottom {
		p.speed.Y = 0
	}
	if left || right {
		p.speed.X = 0
	}

	in := ctx.Input
	if in.IsKeyDown(render.KeyUp) && !top {
		p.speed.Y -= p.cfg.MoveSpeed
	}
	if in.IsKeyDown(render.KeyDown) && !bottom {
		p.speed.Y += p.cfg.MoveSpeed
	}
	if in.IsKeyDown(render.KeyLeft) {
		p.facingRight = false
		if !left {
			p.speed.X -= p.cfg.MoveSpeed
		}
	}
	if in.IsKeyDown(render.KeyRight) {
		p.facingRight = true
		if !right {
			p.speed.X += p.cfg.MoveSpeed
		}
	}
	p.speed.X = clamp(p.speed.X, p.cfg.MaxSpeed)
	p.speed.Y = clamp(p.speed.Y, p.cfg.MaxSpeed)

	world.MoveH(p.collider, p.speed.X*dt)
	world.MoveV(p.collider, p.speed.Y*dt)
	p.pos = world.ActorPos(p.collider)
}

func clamp(v, limit float64) float64 {
	return max(-limit, min(limit, v))
}

// logTile logs the terrain tile under the copter's bottom center whenever
// it changes.
func (p *Player) logTile(ctx *Context, res *assets.Resources) {
	probe := p.pos.Add(geom.V(float64(p.cfg.Width)/2, float64(p.cfg.Height)))
	tile, ok := res.Map.TileAt(res.Terrain, probe)
	if !ok || (p.hasTile && tile == p.lastTile) {
		return
	}
	p.lastTile, p.hasTile = tile, true
	ctx.Log.Debug("tile under copter",
		zap.Int("x", tile.X),
		zap.Int("y", tile.Y),
		zap.Int("id", tile.ID),
	)
}

func (p *Player) Draw(ctx *Context) {
	err := ctx.Store.With(func(res *assets.Resources) error {
		pos := res.World.ActorPos(p.collider)
		rotation := -p.cfg.Tilt
		if p.facingRight {
			rotation = p.cfg.Tilt
		}
		src := geom.R(0, 0, float64(p.cfg.Width), float64(p.cfg.Height))
		ctx.Canvas.DrawTexture(res.Copter, pos.X, pos.Y, render.DrawTextureOptions{
			Source:   &src,
			Rotation: rotation,
			FlipX:    p.facingRight,
			Tint:     copterTint,
		})
		return nil
	})
	if err != nil {
		ctx.Log.Error("draw player", zap.Error(err))
	}
}
