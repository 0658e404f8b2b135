package logging

import (
	"context"
	"time"
)

type EventType string

type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

type EntityKind string

const (
	EntityKindUnknown EntityKind = "unknown"
	EntityKindActor   EntityKind = "actor"
	EntityKindEffect  EntityKind = "effect"
	EntityKindWorld   EntityKind = "world"
)

// Event is the structured record every runtime component publishes. Payload
// carries a typed struct from one of the domain subpackages.
type Event struct {
	Type     EventType   `json:"type"`
	Tick     uint64      `json:"tick"`
	Time     time.Time   `json:"time"`
	Actor    EntityRef   `json:"actor"`
	Targets  []EntityRef `json:"targets,omitempty"`
	Severity Severity    `json:"severity"`
	Category string      `json:"category,omitempty"`
	Payload  any         `json:"payload,omitempty"`
}

type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

const (
	CategoryCombat      = "combat"
	CategoryStatus      = "status"
	CategoryEffect      = "effect"
	CategoryInterpreter = "interpreter"
	CategorySystem      = "system"
)

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type PublisherFunc func(ctx context.Context, event Event)

func (f PublisherFunc) Publish(ctx context.Context, event Event) {
	if f == nil {
		return
	}
	f(ctx, event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) {}

// NopPublisher returns a publisher that discards everything. Components treat
// a nil publisher the same way, but tests read better with an explicit one.
func NopPublisher() Publisher {
	return nopPublisher{}
}

func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// ParseSeverity maps a config string to a severity, defaulting to info.
func ParseSeverity(name string) Severity {
	switch name {
	case "debug":
		return SeverityDebug
	case "warn", "warning":
		return SeverityWarn
	case "error":
		return SeverityError
	default:
		return SeverityInfo
	}
}
