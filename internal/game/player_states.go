package game

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/quadcopter/quadcopter/internal/core/event"
	"github.com/quadcopter/quadcopter/internal/core/fsm"
	"github.com/quadcopter/quadcopter/internal/core/scene"
	"github.com/quadcopter/quadcopter/internal/core/task"
	"github.com/quadcopter/quadcopter/internal/render"
)

const (
	StateNormal fsm.StateID = iota
	StateShoot
	StateDeath
	StateAftermath
)

// playerStates is shared by every Player.
var playerStates = mustTable(fsm.NewTable(StateNormal, map[fsm.StateID]fsm.State[*Player, *Context]{
	StateNormal:    {Name: "normal", Update: updateNormal},
	StateShoot:     {Name: "shoot", Task: shootTask},
	StateDeath:     {Name: "death", Task: deathTask},
	StateAftermath: {Name: "aftermath", Update: updateAftermath},
}))

func mustTable(t *fsm.Table[*Player, *Context], err error) *fsm.Table[*Player, *Context] {
	if err != nil {
		panic(err)
	}
	return t
}

func updateNormal(p *Player, ctx *Context, _ float64) {
	if !ctx.Input.IsKeyJustPressed(render.KeyFire) {
		return
	}
	_, projectiles, err := scene.First[*Projectiles](ctx.Scene)
	if err != nil {
		ctx.Log.Warn("fire ignored", zap.Error(err))
		return
	}
	projectiles.Spawn(p.pos, p.facingRight)
	p.shots++
	event.Emit(ctx.Bus, event.ShotFired{Origin: p.pos, FacingRight: p.facingRight})
	p.machine.Set(StateShoot)
}

func updateAftermath(p *Player, _ *Context, _ float64) {
	p.speed.X = 0
}

// resolve fetches the player behind h for a task step. A stale handle
// aborts the task.
func resolve(ctx *Context, h scene.Handle[*Player]) (*Player, error) {
	p, err := scene.Get(ctx.Scene, h)
	if err != nil {
		return nil, fmt.Errorf("resolve player: %w", err)
	}
	return p, nil
}

// shootTask performs the shot effect, then holds the Shoot state for the
// cooldown so fire is rate limited, and returns to Normal unless another
// transition happened meanwhile.
func shootTask(p *Player) *task.Task[*Context] {
	h := p.self
	return task.New[*Context]("shoot").
		Do(func(ctx *Context) error {
			p, err := resolve(ctx, h)
			if err != nil {
				return err
			}
			ctx.Log.Debug("shot fired", zap.Int("shots", p.shots))
			return nil
		}).
		Wait(p.cfg.ShootCooldown.Seconds()).
		Do(func(ctx *Context) error {
			p, err := resolve(ctx, h)
			if err != nil {
				return err
			}
			if p.machine.State() == StateShoot {
				if _, pending := p.machine.Pending(); !pending {
					p.machine.Set(StateNormal)
				}
			}
			return nil
		})
}

var errAlreadyDead = errors.New("player already dead")

// deathTask marks the player dead. The player's own update observes the
// flag and moves on to Aftermath.
func deathTask(p *Player) *task.Task[*Context] {
	h := p.self
	return task.New[*Context]("death").
		Do(func(ctx *Context) error {
			p, err := resolve(ctx, h)
			if err != nil {
				return err
			}
			if p.dead {
				return errAlreadyDead
			}
			p.dead = true
			ctx.Log.Info("player died", zap.Float64("x", p.pos.X), zap.Float64("y", p.pos.Y))
			event.Emit(ctx.Bus, event.PlayerDied{Pos: p.pos})
			return nil
		})
}
