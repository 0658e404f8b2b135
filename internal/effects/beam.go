package effects

import (
	"context"
	"math"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/logging"
	loggingeffect "runecast/server/logging/effectlog"
)

const (
	beamMinRays       = 3
	beamRaySpacing    = 10.0 // width units per additional ray
	beamMaxHitsPerRay = 10
	beamHitEpsilon    = 0.5 // advance past a hit point along the beam
)

// Beam is an instantaneous or growing line. Hit-testing casts parallel rays
// spread across the beam's width; each ray walks past its own hit points so
// stacked targets in depth all register. Targets are deduplicated against a
// beam-wide hit-set, so repeat tests while the beam grows only fire on_hit
// for newly reached targets.
type Beam struct {
	id      string
	manager *Manager
	ctx     Context
	onHit   script.ActionList

	length     float64
	width      float64
	duration   float64
	travelTime float64
	elapsed    float64
	fullTested bool

	hitSet map[string]struct{}
	done   bool
	reason string
}

func newBeam(m *Manager, act *script.Action, ctx Context) *Beam {
	b := &Beam{
		id:         m.world.NextEffectID(),
		manager:    m,
		ctx:        ctx,
		onHit:      act.OnHit,
		length:     act.Float("length", 0),
		width:      act.Float("width", 0),
		duration:   act.Float("duration", 0),
		travelTime: act.Float("travel_time", 0),
		hitSet:     make(map[string]struct{}),
	}
	if b.travelTime <= 0 {
		// Instant beams resolve their full length once, at creation.
		b.hitTest(b.length)
		b.fullTested = true
	}
	return b
}

func (b *Beam) ID() string     { return b.id }
func (b *Beam) Kind() string   { return "beam" }
func (b *Beam) Done() bool     { return b.done }
func (b *Beam) Reason() string { return b.reason }
func (b *Beam) Hits() int      { return len(b.hitSet) }

// RayCount implements the coverage rule: one ray per beamRaySpacing units of
// width, never fewer than beamMinRays.
func (b *Beam) RayCount() int {
	rays := int(b.width / beamRaySpacing)
	if rays < beamMinRays {
		return beamMinRays
	}
	return rays
}

// CurrentLength reports how far the beam has grown.
func (b *Beam) CurrentLength() float64 {
	if b.travelTime <= 0 || b.elapsed >= b.travelTime {
		return b.length
	}
	return b.length * b.elapsed / b.travelTime
}

// Opacity fades linearly once travel completes, reaching zero at expiry.
func (b *Beam) Opacity() float64 {
	if b.elapsed <= b.travelTime {
		return 1
	}
	window := b.duration - b.travelTime
	if window <= 0 {
		return 0
	}
	remaining := (b.duration - b.elapsed) / window
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (b *Beam) Advance(dt float64) {
	if b.done {
		return
	}
	b.elapsed += dt

	if !b.fullTested {
		b.hitTest(b.CurrentLength())
		if b.elapsed >= b.travelTime {
			b.fullTested = true
		}
	}

	if b.elapsed >= b.duration && b.elapsed >= b.travelTime {
		b.done = true
		b.reason = "expired"
	}
}

// hitTest casts the parallel rays out to currentLength. Each ray repeatedly
// finds its nearest intersected target beyond a moving cursor, then advances
// the cursor past that hit point by a small epsilon, bounded by a per-ray hit
// budget.
func (b *Beam) hitTest(currentLength float64) {
	if currentLength <= 0 {
		return
	}
	forward := b.ctx.Dir.Normalized()
	across := forward.Perp()
	rays := b.RayCount()

	for i := 0; i < rays; i++ {
		frac := 0.5
		if rays > 1 {
			frac = float64(i) / float64(rays-1)
		}
		origin := b.ctx.Origin.Add(across.Scale((frac - 0.5) * b.width))

		cursor := 0.0
		for hits := 0; hits < beamMaxHitsPerRay && cursor <= currentLength; hits++ {
			target, entry := b.nearestAlongRay(origin, forward, cursor, currentLength)
			if target == "" {
				break
			}
			cursor = entry + beamHitEpsilon
			if _, seen := b.hitSet[target]; seen {
				continue
			}
			b.hitSet[target] = struct{}{}
			actor, ok := b.manager.world.Actor(target)
			if !ok {
				continue
			}
			loggingeffect.Hit(context.Background(), b.manager.publisher, b.manager.world.Tick(),
				logging.EntityRef{ID: b.id, Kind: logging.EntityKindEffect},
				b.manager.world.EntityRef(target),
				loggingeffect.HitPayload{Kind: b.Kind(), X: actor.Pos.X, Y: actor.Pos.Y})
			b.manager.interpreter.ExecuteList(b.onHit, b.ctx.WithImpact(actor.Pos, target))
		}
	}
}

// nearestAlongRay returns the closest eligible target whose body the ray
// enters at a distance in [cursor, limit].
func (b *Beam) nearestAlongRay(origin, dir geom.Vec2, cursor, limit float64) (string, float64) {
	bestID := ""
	bestEntry := math.Inf(1)
	for _, actor := range b.manager.world.Actors() {
		if actor.ID == b.ctx.CasterID || !actor.Alive() {
			continue
		}
		entry, hit := geom.RayCircleIntersection(origin, dir, actor.Pos, actor.Radius)
		if !hit || entry < cursor || entry > limit {
			continue
		}
		if entry < bestEntry {
			bestEntry = entry
			bestID = actor.ID
		}
	}
	return bestID, bestEntry
}
