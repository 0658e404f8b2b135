// Package world owns the actor table the ability runtime acts upon. Actors
// are referenced everywhere else by string ID only; lookups tolerate stale
// handles so an expired target degrades to a missed hit instead of an error.
package world

import (
	"context"
	"fmt"
	"sort"

	"runecast/server/internal/geom"
	"runecast/server/logging"
	loggingcombat "runecast/server/logging/combat"
)

type ActorKind string

const (
	ActorKindCaster   ActorKind = "caster"
	ActorKindCreature ActorKind = "creature"
	ActorKindDummy    ActorKind = "dummy"
)

// Health is the capability damage and healing operate on. Actors without it
// (markers, scenery stand-ins) absorb nothing.
type Health struct {
	Current float64
	Max     float64
}

func (h *Health) applyDelta(delta float64) {
	h.Current += delta
	if h.Current > h.Max {
		h.Current = h.Max
	}
	if h.Current < 0 {
		h.Current = 0
	}
}

type Actor struct {
	ID     string
	Kind   ActorKind
	Pos    geom.Vec2
	Facing geom.Vec2
	Radius float64
	Health *Health

	// MoveIntent is the normalized direction movement logic wants this actor
	// to travel; the host loop scales it by the status manager's movement
	// modifiers before integrating.
	MoveIntent geom.Vec2
	MoveSpeed  float64
}

func (a *Actor) Alive() bool {
	return a != nil && a.Health != nil && a.Health.Current > 0
}

// Obstacle is a static blocking rectangle. Pierceable obstacles let
// projectiles pass (lava-style hazards); everything else stops them.
type Obstacle struct {
	Rect       geom.Rect
	Pierceable bool
}

// World is single-threaded: every mutation happens on the frame loop, so no
// lock guards the tables.
type World struct {
	Width  float64
	Height float64

	actors    map[string]*Actor
	order     []string
	obstacles []Obstacle

	publisher logging.Publisher
	tick      uint64
	nextID    uint64
}

func New(width, height float64, publisher logging.Publisher) *World {
	return &World{
		Width:     width,
		Height:    height,
		actors:    make(map[string]*Actor),
		publisher: publisher,
	}
}

// SetTick records the authoritative frame counter stamped onto events.
func (w *World) SetTick(tick uint64) {
	w.tick = tick
}

func (w *World) Tick() uint64 {
	return w.tick
}

func (w *World) Publisher() logging.Publisher {
	return w.publisher
}

// NextEffectID hands out sequential identifiers for delivery entities.
func (w *World) NextEffectID() string {
	w.nextID++
	return fmt.Sprintf("effect-%d", w.nextID)
}

func (w *World) AddActor(actor *Actor) {
	if actor == nil || actor.ID == "" {
		return
	}
	if _, exists := w.actors[actor.ID]; !exists {
		w.order = append(w.order, actor.ID)
	}
	w.actors[actor.ID] = actor
}

func (w *World) RemoveActor(id string) {
	if _, exists := w.actors[id]; !exists {
		return
	}
	delete(w.actors, id)
	for i, existing := range w.order {
		if existing == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Actor resolves a weak handle. The second return is false for stale or
// empty IDs.
func (w *World) Actor(id string) (*Actor, bool) {
	if id == "" {
		return nil, false
	}
	actor, ok := w.actors[id]
	return actor, ok
}

// Actors returns all actors in insertion order. The slice is fresh; callers
// may mutate the world while ranging over it.
func (w *World) Actors() []*Actor {
	out := make([]*Actor, 0, len(w.order))
	for _, id := range w.order {
		if actor, ok := w.actors[id]; ok {
			out = append(out, actor)
		}
	}
	return out
}

// ActorsWithin returns living, health-bearing actors whose bodies overlap the
// circle, excluding the listed IDs, nearest first.
func (w *World) ActorsWithin(center geom.Vec2, radius float64, exclude ...string) []*Actor {
	excluded := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}
	var hits []*Actor
	for _, actor := range w.Actors() {
		if _, skip := excluded[actor.ID]; skip {
			continue
		}
		if !actor.Alive() {
			continue
		}
		if geom.CirclesOverlap(center, radius, actor.Pos, actor.Radius) {
			hits = append(hits, actor)
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Pos.DistanceTo(center) < hits[j].Pos.DistanceTo(center)
	})
	return hits
}

func (w *World) AddObstacle(obs Obstacle) {
	w.obstacles = append(w.obstacles, obs)
}

func (w *World) Obstacles() []Obstacle {
	return w.obstacles
}

// BlockedAt reports whether a circle overlaps a non-pierceable obstacle or
// leaves the world bounds.
func (w *World) BlockedAt(center geom.Vec2, radius float64) bool {
	if center.X-radius < 0 || center.Y-radius < 0 ||
		center.X+radius > w.Width || center.Y+radius > w.Height {
		return true
	}
	for _, obs := range w.obstacles {
		if obs.Pierceable {
			continue
		}
		if geom.CircleRectOverlap(center, radius, obs.Rect) {
			return true
		}
	}
	return false
}

// ApplyDamage subtracts amount from the target's health capability. Returns
// false (with a log line) when the handle is stale or the target carries no
// health.
func (w *World) ApplyDamage(targetID string, amount float64, element, sourceID string) bool {
	target, ok := w.actors[targetID]
	if !ok || target.Health == nil {
		loggingcombat.CapabilityMissing(context.Background(), w.publisher, w.tick, w.EntityRef(targetID))
		return false
	}
	target.Health.applyDelta(-amount)
	loggingcombat.DamageApplied(context.Background(), w.publisher, w.tick,
		w.EntityRef(sourceID), w.EntityRef(targetID),
		loggingcombat.DamagePayload{
			Amount:  amount,
			Element: element,
			Health:  target.Health.Current,
			Fatal:   target.Health.Current <= 0,
		})
	return true
}

// ApplyHealing adds amount to the target's health capability, clamped to max.
func (w *World) ApplyHealing(targetID string, amount float64, sourceID string) bool {
	target, ok := w.actors[targetID]
	if !ok || target.Health == nil {
		loggingcombat.CapabilityMissing(context.Background(), w.publisher, w.tick, w.EntityRef(targetID))
		return false
	}
	target.Health.applyDelta(amount)
	loggingcombat.HealingApplied(context.Background(), w.publisher, w.tick,
		w.EntityRef(sourceID), w.EntityRef(targetID),
		loggingcombat.HealingPayload{Amount: amount, Health: target.Health.Current})
	return true
}

// Nudge displaces an actor (knockback), clamped to world bounds.
func (w *World) Nudge(targetID string, delta geom.Vec2) bool {
	target, ok := w.actors[targetID]
	if !ok {
		return false
	}
	next := target.Pos.Add(delta)
	if next.X < target.Radius {
		next.X = target.Radius
	}
	if next.Y < target.Radius {
		next.Y = target.Radius
	}
	if next.X > w.Width-target.Radius {
		next.X = w.Width - target.Radius
	}
	if next.Y > w.Height-target.Radius {
		next.Y = w.Height - target.Radius
	}
	target.Pos = next
	return true
}

func (w *World) EntityRef(id string) logging.EntityRef {
	if id == "" {
		return logging.EntityRef{Kind: logging.EntityKindUnknown}
	}
	if _, ok := w.actors[id]; ok {
		return logging.EntityRef{ID: id, Kind: logging.EntityKindActor}
	}
	return logging.EntityRef{ID: id, Kind: logging.EntityKindUnknown}
}
