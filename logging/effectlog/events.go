// Package effectlog publishes delivery-entity lifecycle events.
package effectlog

import (
	"context"

	"runecast/server/logging"
)

const (
	// EventSpawned is emitted when a delivery entity enters the world.
	EventSpawned logging.EventType = "effect.spawned"
	// EventEnded is emitted when a delivery entity is destroyed.
	EventEnded logging.EventType = "effect.ended"
	// EventHit is emitted per target a delivery entity hits.
	EventHit logging.EventType = "effect.hit"
)

type SpawnedPayload struct {
	Kind  string `json:"kind"`
	Owner string `json:"owner,omitempty"`
}

type EndedPayload struct {
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
	Hits   int    `json:"hits,omitempty"`
}

type HitPayload struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func Spawned(ctx context.Context, pub logging.Publisher, tick uint64, effect logging.EntityRef, payload SpawnedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSpawned,
		Tick:     tick,
		Actor:    effect,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEffect,
		Payload:  payload,
	})
}

func Ended(ctx context.Context, pub logging.Publisher, tick uint64, effect logging.EntityRef, payload EndedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventEnded,
		Tick:     tick,
		Actor:    effect,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEffect,
		Payload:  payload,
	})
}

func Hit(ctx context.Context, pub logging.Publisher, tick uint64, effect, target logging.EntityRef, payload HitPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventHit,
		Tick:     tick,
		Actor:    effect,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryEffect,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
