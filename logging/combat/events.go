// Package combat publishes typed combat events: health deltas and the
// interpreter's skip diagnostics.
package combat

import (
	"context"

	"runecast/server/logging"
)

const (
	// EventDamageApplied is emitted when a damage application lands.
	EventDamageApplied logging.EventType = "combat.damage_applied"
	// EventHealingApplied is emitted when a healing application lands.
	EventHealingApplied logging.EventType = "combat.healing_applied"
	// EventCapabilityMissing is emitted when a target has no health capability.
	EventCapabilityMissing logging.EventType = "combat.capability_missing"
	// EventActionSkipped is emitted when the interpreter drops a malformed action.
	EventActionSkipped logging.EventType = "interpreter.action_skipped"
)

type DamagePayload struct {
	Amount  float64 `json:"amount"`
	Element string  `json:"element,omitempty"`
	Health  float64 `json:"health"`
	Fatal   bool    `json:"fatal,omitempty"`
}

type HealingPayload struct {
	Amount float64 `json:"amount"`
	Health float64 `json:"health"`
}

type SkippedPayload struct {
	Action  string   `json:"action"`
	Reason  string   `json:"reason"`
	Missing []string `json:"missing,omitempty"`
}

func DamageApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload DamagePayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventDamageApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func HealingApplied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload HealingPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHealingApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
	})
}

func CapabilityMissing(ctx context.Context, pub logging.Publisher, tick uint64, target logging.EntityRef) {
	publish(ctx, pub, logging.Event{
		Type:     EventCapabilityMissing,
		Tick:     tick,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityWarn,
		Category: logging.CategoryCombat,
	})
}

func ActionSkipped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SkippedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventActionSkipped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Category: logging.CategoryInterpreter,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
