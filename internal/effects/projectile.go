package effects

import (
	"context"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/logging"
	loggingeffect "runecast/server/logging/effectlog"
)

const (
	projectileMinSpeed    = 50.0
	projectileMaxSpeed    = 1200.0
	projectileRadius      = 6.0
	projectileMaxLifetime = 4.0 // seconds
	defaultMaxPierceHits  = 3
)

// Projectile travels in a straight line, accelerating toward the speed clamp,
// and re-enters the interpreter once per distinct target hit. Non-piercing
// projectiles stop on the first hit; piercing ones carry a hit budget.
// Overlapping a non-pierceable obstacle destroys it regardless of piercing.
type Projectile struct {
	id      string
	manager *Manager
	ctx     Context
	onHit   script.ActionList

	pos       geom.Vec2
	dir       geom.Vec2
	speed     float64
	accel     float64
	lifetime  float64
	piercing  bool
	maxPierce int

	hitSet map[string]struct{}
	done   bool
	reason string
}

func newProjectile(m *Manager, act *script.Action, ctx Context) *Projectile {
	return &Projectile{
		id:        m.world.NextEffectID(),
		manager:   m,
		ctx:       ctx,
		onHit:     act.OnHit,
		pos:       ctx.Origin,
		dir:       ctx.Dir,
		speed:     clampSpeed(act.Float("speed", projectileMinSpeed)),
		accel:     act.Float("acceleration", 0),
		piercing:  act.Bool("piercing", false),
		maxPierce: act.Int("max_pierce_hits", defaultMaxPierceHits),
		hitSet:    make(map[string]struct{}),
	}
}

func (p *Projectile) ID() string     { return p.id }
func (p *Projectile) Kind() string   { return "projectile" }
func (p *Projectile) Done() bool     { return p.done }
func (p *Projectile) Reason() string { return p.reason }
func (p *Projectile) Hits() int      { return len(p.hitSet) }

func (p *Projectile) Pos() geom.Vec2 { return p.pos }

func (p *Projectile) Advance(dt float64) {
	if p.done {
		return
	}
	p.speed = clampSpeed(p.speed + p.accel*dt)
	p.pos = p.pos.Add(p.dir.Scale(p.speed * dt))

	p.lifetime += dt
	if p.lifetime > projectileMaxLifetime {
		p.end("expired")
		return
	}

	if p.manager.world.BlockedAt(p.pos, projectileRadius) {
		p.end("obstacle")
		return
	}

	for _, target := range p.manager.world.ActorsWithin(p.pos, projectileRadius, p.ctx.CasterID) {
		if _, seen := p.hitSet[target.ID]; seen {
			continue
		}
		p.hitSet[target.ID] = struct{}{}
		loggingeffect.Hit(context.Background(), p.manager.publisher, p.manager.world.Tick(),
			logging.EntityRef{ID: p.id, Kind: logging.EntityKindEffect},
			p.manager.world.EntityRef(target.ID),
			loggingeffect.HitPayload{Kind: p.Kind(), X: p.pos.X, Y: p.pos.Y})
		p.manager.interpreter.ExecuteList(p.onHit, p.ctx.WithImpact(p.pos, target.ID))

		if !p.piercing {
			p.end("impact")
			return
		}
		if len(p.hitSet) >= p.maxPierce {
			p.end("pierce-budget")
			return
		}
	}
}

func (p *Projectile) end(reason string) {
	p.done = true
	p.reason = reason
}

func clampSpeed(speed float64) float64 {
	if speed < projectileMinSpeed {
		return projectileMinSpeed
	}
	if speed > projectileMaxSpeed {
		return projectileMaxSpeed
	}
	return speed
}
