package status

import (
	"context"

	"runecast/server/internal/world"
	"runecast/server/logging"
	loggingstatuses "runecast/server/logging/statuses"
)

type handler func(m *Manager, target *world.Actor, inst *Instance)

// Definition fixes the behavior of one status kind: movement modifiers read
// by external movement logic, and optional periodic/expiry handlers.
type Definition struct {
	Kind         Kind
	TickInterval float64 // seconds; 0 disables ticking
	MoveScale    float64 // 1 = unaffected, 0 = rooted
	InvertMove   bool
	DamageScale  float64 // scales damage dealt by the afflicted actor
	OnTick       handler
	OnExpire     handler
}

// Instance is one live (actor, kind) record.
type Instance struct {
	Kind      Kind
	SourceID  string
	Remaining float64
	Duration  float64
	tickAccum float64
}

const (
	burningDamagePerSecond  = 4.0
	poisonedDamagePerSecond = 2.0
	statusTickInterval      = 0.5
)

func newDefinitions() map[Kind]*Definition {
	return map[Kind]*Definition{
		KindBurning: {
			Kind:         KindBurning,
			TickInterval: statusTickInterval,
			MoveScale:    1,
			DamageScale:  1,
			OnTick: func(m *Manager, target *world.Actor, inst *Instance) {
				m.world.ApplyDamage(target.ID, burningDamagePerSecond*statusTickInterval, "fire", inst.SourceID)
			},
		},
		KindFrozen: {
			Kind:        KindFrozen,
			MoveScale:   0,
			DamageScale: 1,
		},
		KindStunned: {
			Kind:        KindStunned,
			MoveScale:   0,
			DamageScale: 1,
		},
		KindPoisoned: {
			Kind:         KindPoisoned,
			TickInterval: statusTickInterval,
			MoveScale:    1,
			DamageScale:  1,
			OnTick: func(m *Manager, target *world.Actor, inst *Instance) {
				m.world.ApplyDamage(target.ID, poisonedDamagePerSecond*statusTickInterval, "poison", inst.SourceID)
			},
		},
		KindShocked: {
			Kind:        KindShocked,
			MoveScale:   1,
			DamageScale: 1,
		},
		KindSlowed: {
			Kind:        KindSlowed,
			MoveScale:   0.5,
			DamageScale: 1,
		},
		KindFeared: {
			Kind:        KindFeared,
			MoveScale:   1,
			InvertMove:  true,
			DamageScale: 1,
		},
		KindWeakened: {
			Kind:        KindWeakened,
			MoveScale:   1,
			DamageScale: 0.5,
		},
	}
}

// Manager owns the process-wide record table. It is only ever touched from
// the frame loop, so mutation needs no lock. Removal during iteration sticks
// to Go's delete-during-range guarantee.
type Manager struct {
	defs      map[Kind]*Definition
	records   map[string]map[Kind]*Instance
	world     *world.World
	publisher logging.Publisher
}

func NewManager(w *world.World, publisher logging.Publisher) *Manager {
	return &Manager{
		defs:      newDefinitions(),
		records:   make(map[string]map[Kind]*Instance),
		world:     w,
		publisher: publisher,
	}
}

// Apply creates or refreshes the (target, kind) record. Re-application never
// stacks: the record's remaining duration is reset to the new value. Returns
// false for unknown targets, unknown kinds, or non-positive durations.
func (m *Manager) Apply(targetID string, kind Kind, duration float64, sourceID string) bool {
	target, ok := m.world.Actor(targetID)
	if !ok || !target.Alive() {
		return false
	}
	if _, known := m.defs[kind]; !known || duration <= 0 {
		return false
	}
	byKind := m.records[targetID]
	if byKind == nil {
		byKind = make(map[Kind]*Instance)
		m.records[targetID] = byKind
	}
	payload := loggingstatuses.AppliedPayload{
		Status:     string(kind),
		SourceID:   sourceID,
		Duration:   duration,
		DurationMs: int64(duration * 1000),
	}
	if inst, exists := byKind[kind]; exists {
		inst.SourceID = sourceID
		inst.Remaining = duration
		inst.Duration = duration
		loggingstatuses.Refreshed(context.Background(), m.publisher, m.world.Tick(),
			m.world.EntityRef(sourceID), m.world.EntityRef(targetID), payload)
		return true
	}
	byKind[kind] = &Instance{
		Kind:      kind,
		SourceID:  sourceID,
		Remaining: duration,
		Duration:  duration,
	}
	loggingstatuses.Applied(context.Background(), m.publisher, m.world.Tick(),
		m.world.EntityRef(sourceID), m.world.EntityRef(targetID), payload)
	return true
}

// HasStatus is the read-only gate movement and AI logic polls.
func (m *Manager) HasStatus(targetID string, kind Kind) bool {
	byKind, ok := m.records[targetID]
	if !ok {
		return false
	}
	_, active := byKind[kind]
	return active
}

// Remaining reports the seconds left on a record, zero when absent.
func (m *Manager) Remaining(targetID string, kind Kind) float64 {
	if byKind, ok := m.records[targetID]; ok {
		if inst, active := byKind[kind]; active {
			return inst.Remaining
		}
	}
	return 0
}

// MovementScale folds every active status into one speed multiplier: the
// most restrictive wins (rooted beats slowed).
func (m *Manager) MovementScale(targetID string) float64 {
	scale := 1.0
	for kind := range m.records[targetID] {
		if def, ok := m.defs[kind]; ok && def.MoveScale < scale {
			scale = def.MoveScale
		}
	}
	return scale
}

// MovementInverted reports whether the actor's movement direction flips
// (feared targets run the wrong way).
func (m *Manager) MovementInverted(targetID string) bool {
	for kind := range m.records[targetID] {
		if def, ok := m.defs[kind]; ok && def.InvertMove {
			return true
		}
	}
	return false
}

// DamageDealtScale reports the outgoing-damage multiplier for an actor
// (weakened halves it).
func (m *Manager) DamageDealtScale(sourceID string) float64 {
	scale := 1.0
	for kind := range m.records[sourceID] {
		if def, ok := m.defs[kind]; ok && def.DamageScale < scale {
			scale = def.DamageScale
		}
	}
	return scale
}

// Dominant returns the highest-priority active status for visual precedence.
func (m *Manager) Dominant(targetID string) (Kind, bool) {
	best := Kind("")
	bestRank := len(priorityOrder) + 1
	for kind := range m.records[targetID] {
		if rank := Priority(kind); rank < bestRank {
			best = kind
			bestRank = rank
		}
	}
	return best, best != ""
}

// Advance decrements every record by dt, running periodic handlers on their
// cadence and expiry handlers at zero.
func (m *Manager) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	for targetID, byKind := range m.records {
		target, ok := m.world.Actor(targetID)
		if !ok {
			delete(m.records, targetID)
			continue
		}
		for kind, inst := range byKind {
			def := m.defs[kind]
			if def == nil {
				delete(byKind, kind)
				continue
			}
			inst.Remaining -= dt
			if def.TickInterval > 0 && def.OnTick != nil && target.Alive() {
				inst.tickAccum += dt
				for inst.tickAccum >= def.TickInterval {
					inst.tickAccum -= def.TickInterval
					def.OnTick(m, target, inst)
				}
			}
			if inst.Remaining <= 0 {
				if def.OnExpire != nil {
					def.OnExpire(m, target, inst)
				}
				delete(byKind, kind)
				loggingstatuses.Expired(context.Background(), m.publisher, m.world.Tick(),
					m.world.EntityRef(targetID), loggingstatuses.ExpiredPayload{Status: string(kind)})
			}
		}
		if len(byKind) == 0 {
			delete(m.records, targetID)
		}
	}
}
