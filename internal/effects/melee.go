package effects

import (
	"context"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/internal/world"
	"runecast/server/logging"
	loggingeffect "runecast/server/logging/effectlog"
)

const (
	defaultMeleeWindup   = 0.15 // seconds
	defaultMeleeActive   = 0.25
	defaultMeleeArcAngle = 90.0 // degrees
	defaultMeleeWidth    = 40.0
)

const (
	meleeShapeArc       = "arc"
	meleeShapeCircle    = "circle"
	meleeShapeRectangle = "rectangle"
)

// Melee is a two-phase swing: collision is disabled during windup (the swing
// visual scales in), then enabled for the active window. Each target is hit
// at most once per activation.
type Melee struct {
	id      string
	manager *Manager
	ctx     Context
	onHit   script.ActionList

	shape    string
	reach    float64
	arcAngle float64
	width    float64
	windup   float64
	active   float64
	elapsed  float64

	hitSet map[string]struct{}
	done   bool
	reason string
}

func newMelee(m *Manager, act *script.Action, ctx Context) *Melee {
	shape := act.String("shape", meleeShapeArc)
	switch shape {
	case meleeShapeArc, meleeShapeCircle, meleeShapeRectangle:
	default:
		shape = meleeShapeArc
	}
	return &Melee{
		id:       m.world.NextEffectID(),
		manager:  m,
		ctx:      ctx,
		onHit:    act.OnHit,
		shape:    shape,
		reach:    act.Float("range", 0),
		arcAngle: act.Float("arc_angle", defaultMeleeArcAngle),
		width:    act.Float("width", defaultMeleeWidth),
		windup:   act.Float("windup_time", defaultMeleeWindup),
		active:   act.Float("active_time", defaultMeleeActive),
		hitSet:   make(map[string]struct{}),
	}
}

func (s *Melee) ID() string     { return s.id }
func (s *Melee) Kind() string   { return "melee" }
func (s *Melee) Done() bool     { return s.done }
func (s *Melee) Reason() string { return s.reason }
func (s *Melee) Hits() int      { return len(s.hitSet) }

// VisualScale reports the windup scale-in progress, 0..1 once active.
func (s *Melee) VisualScale() float64 {
	if s.windup <= 0 || s.elapsed >= s.windup {
		return 1
	}
	return s.elapsed / s.windup
}

func (s *Melee) Advance(dt float64) {
	if s.done {
		return
	}
	s.elapsed += dt
	if s.elapsed < s.windup {
		return
	}
	if s.elapsed > s.windup+s.active {
		s.done = true
		s.reason = "expired"
		return
	}

	// The swing tracks the caster while active; a despawned caster leaves
	// the swing anchored at the cast origin.
	origin := s.ctx.Origin
	if caster, ok := s.manager.world.Actor(s.ctx.CasterID); ok {
		origin = caster.Pos
	}

	for _, target := range s.manager.world.Actors() {
		if target.ID == s.ctx.CasterID || !target.Alive() {
			continue
		}
		if _, seen := s.hitSet[target.ID]; seen {
			continue
		}
		if !s.overlaps(origin, target) {
			continue
		}
		s.hitSet[target.ID] = struct{}{}
		loggingeffect.Hit(context.Background(), s.manager.publisher, s.manager.world.Tick(),
			logging.EntityRef{ID: s.id, Kind: logging.EntityKindEffect},
			s.manager.world.EntityRef(target.ID),
			loggingeffect.HitPayload{Kind: s.Kind(), X: target.Pos.X, Y: target.Pos.Y})
		s.manager.interpreter.ExecuteList(s.onHit, s.ctx.WithImpact(target.Pos, target.ID))
	}
}

func (s *Melee) overlaps(origin geom.Vec2, target *world.Actor) bool {
	switch s.shape {
	case meleeShapeCircle:
		return geom.CirclesOverlap(origin, s.reach, target.Pos, target.Radius)
	case meleeShapeRectangle:
		return geom.OrientedRectContains(origin, s.ctx.Dir, s.reach, s.width, target.Pos, target.Radius)
	default:
		return geom.ArcContains(origin, s.ctx.Dir, s.reach, s.arcAngle, target.Pos, target.Radius)
	}
}
