package effects

import (
	"context"

	"runecast/server/internal/script"
	"runecast/server/logging"
	loggingeffect "runecast/server/logging/effectlog"
)

// areaTickInterval is the fixed cadence for on_tick hooks.
const areaTickInterval = 1.0 // seconds

// Area is a persistent field around a point. on_enter fires once per target
// the first time it is found inside the current radius; on_tick fires for
// every target inside at each tick boundary and may repeat per target across
// ticks; on_expire fires when the duration elapses, partitioned by action
// kind (see expire).
type Area struct {
	id      string
	manager *Manager
	ctx     Context

	onEnter  script.ActionList
	onTick   script.ActionList
	onExpire script.ActionList

	radius       float64
	targetRadius float64
	growthTime   float64
	duration     float64
	lingering    float64
	elapsed      float64
	tickAccum    float64

	entered map[string]struct{}
	ticks   int
	done    bool
	reason  string
}

func newArea(m *Manager, act *script.Action, ctx Context) *Area {
	a := &Area{
		id:           m.world.NextEffectID(),
		manager:      m,
		ctx:          ctx,
		onEnter:      act.OnEnter,
		onTick:       act.OnTick,
		onExpire:     act.OnExpire,
		targetRadius: act.Float("radius", 0),
		growthTime:   act.Float("growth_time", 0),
		duration:     act.Float("duration", 0),
		lingering:    act.Float("lingering_damage", 0),
		entered:      make(map[string]struct{}),
	}
	if a.growthTime <= 0 {
		a.radius = a.targetRadius
	}
	return a
}

func (a *Area) ID() string     { return a.id }
func (a *Area) Kind() string   { return "area" }
func (a *Area) Done() bool     { return a.done }
func (a *Area) Reason() string { return a.reason }
func (a *Area) Hits() int      { return len(a.entered) }

// Radius reports the current collision extent. Any attached continuous
// detection shape reads this same value, so growth moves both in lockstep.
func (a *Area) Radius() float64 { return a.radius }

func (a *Area) Advance(dt float64) {
	if a.done {
		return
	}
	a.elapsed += dt

	if a.growthTime > 0 && a.radius < a.targetRadius {
		grown := a.targetRadius * a.elapsed / a.growthTime
		if grown > a.targetRadius {
			grown = a.targetRadius
		}
		a.radius = grown
	}

	inside := a.manager.world.ActorsWithin(a.ctx.Origin, a.radius, a.ctx.CasterID)

	for _, target := range inside {
		if _, seen := a.entered[target.ID]; seen {
			continue
		}
		a.entered[target.ID] = struct{}{}
		loggingeffect.Hit(context.Background(), a.manager.publisher, a.manager.world.Tick(),
			logging.EntityRef{ID: a.id, Kind: logging.EntityKindEffect},
			a.manager.world.EntityRef(target.ID),
			loggingeffect.HitPayload{Kind: a.Kind(), X: target.Pos.X, Y: target.Pos.Y})
		a.manager.interpreter.ExecuteList(a.onEnter, a.ctx.WithImpact(target.Pos, target.ID))
	}

	a.tickAccum += dt
	for a.tickAccum >= areaTickInterval {
		a.tickAccum -= areaTickInterval
		a.ticks++
		for _, target := range a.manager.world.ActorsWithin(a.ctx.Origin, a.radius, a.ctx.CasterID) {
			a.manager.interpreter.ExecuteList(a.onTick, a.ctx.WithImpact(target.Pos, target.ID))
			if a.lingering > 0 {
				a.manager.world.ApplyDamage(target.ID, a.lingering, a.ctx.Element(), a.ctx.CasterID)
			}
		}
	}

	if a.elapsed >= a.duration {
		a.expire()
		a.done = true
		a.reason = "expired"
	}
}

// targetedActions are the expiry actions that bind to individual targets
// inside the field rather than to the field's position.
var targetedActions = map[string]struct{}{
	"damage":       {},
	"apply_status": {},
	"knockback":    {},
	"heal":         {},
	"chain":        {},
}

// expire partitions on_expire actions three ways before running any of them:
// positional actions run once at the area's position; targeted actions run
// once per target still inside; damage actions carrying their own area_radius
// run once unbound, leaving enemy discovery to the interpreter's fallback.
func (a *Area) expire() {
	inside := a.manager.world.ActorsWithin(a.ctx.Origin, a.radius, a.ctx.CasterID)
	for _, act := range a.onExpire {
		_, targeted := targetedActions[act.Name]
		switch {
		case act.Name == "damage" && act.Has("area_radius"):
			a.manager.interpreter.Execute(act, a.ctx.WithImpact(a.ctx.Origin, ""))
		case targeted:
			for _, target := range inside {
				a.manager.interpreter.Execute(act, a.ctx.WithImpact(target.Pos, target.ID))
			}
		default:
			a.manager.interpreter.Execute(act, a.ctx.WithImpact(a.ctx.Origin, ""))
		}
	}
}
