// Package statuses publishes typed status-effect lifecycle events.
package statuses

import (
	"context"

	"runecast/server/logging"
)

const (
	// EventApplied is emitted when a status is first applied to an actor.
	EventApplied logging.EventType = "status.applied"
	// EventRefreshed is emitted when an existing status has its duration reset.
	EventRefreshed logging.EventType = "status.refreshed"
	// EventExpired is emitted when a status runs out and is removed.
	EventExpired logging.EventType = "status.expired"
)

type AppliedPayload struct {
	Status     string  `json:"status"`
	SourceID   string  `json:"sourceId,omitempty"`
	DurationMs int64   `json:"durationMs,omitempty"`
	Duration   float64 `json:"durationSeconds,omitempty"`
}

type ExpiredPayload struct {
	Status string `json:"status"`
}

func Applied(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AppliedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventApplied,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryStatus,
		Payload:  payload,
	})
}

func Refreshed(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload AppliedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventRefreshed,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityDebug,
		Category: logging.CategoryStatus,
		Payload:  payload,
	})
}

func Expired(ctx context.Context, pub logging.Publisher, tick uint64, target logging.EntityRef, payload ExpiredPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventExpired,
		Tick:     tick,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryStatus,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, event)
}
