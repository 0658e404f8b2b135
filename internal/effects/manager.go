package effects

import (
	"context"

	"runecast/server/internal/world"
	"runecast/server/logging"
	loggingeffect "runecast/server/logging/effectlog"
)

// Entity is one live delivery actor. Entities own their geometry state and
// hit-set and decide their own destruction; the manager only ticks them and
// prunes the finished ones.
type Entity interface {
	ID() string
	Kind() string
	Advance(dt float64)
	Done() bool
	Reason() string
	Hits() int
}

// Manager owns the live delivery entities and the scheduled action queue.
// Everything runs on the frame loop; Advance is reentrant-safe in the sense
// that entities spawned while ticking join the list and start advancing on
// the next frame.
type Manager struct {
	world       *world.World
	publisher   logging.Publisher
	interpreter *Interpreter
	entities    []Entity
	groups      []*scheduledGroup
}

func NewManager(w *world.World, publisher logging.Publisher) *Manager {
	return &Manager{
		world:     w,
		publisher: publisher,
	}
}

func (m *Manager) bind(in *Interpreter) {
	m.interpreter = in
}

// Insert registers a freshly spawned entity with the world's scene list.
func (m *Manager) Insert(e Entity) {
	if e == nil {
		return
	}
	m.entities = append(m.entities, e)
	loggingeffect.Spawned(context.Background(), m.publisher, m.world.Tick(),
		logging.EntityRef{ID: e.ID(), Kind: logging.EntityKindEffect},
		loggingeffect.SpawnedPayload{Kind: e.Kind()})
}

// ActiveEntities reports how many delivery entities are still live.
func (m *Manager) ActiveEntities() int {
	return len(m.entities)
}

// Advance ticks every live entity, prunes the finished ones, then fires due
// scheduled groups. Entities spawned mid-pass (hook reentry) are appended
// behind the snapshot and first tick next frame.
func (m *Manager) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	snapshot := m.entities
	for _, e := range snapshot {
		if !e.Done() {
			e.Advance(dt)
		}
	}
	filtered := m.entities[:0]
	for _, e := range m.entities {
		if e.Done() {
			loggingeffect.Ended(context.Background(), m.publisher, m.world.Tick(),
				logging.EntityRef{ID: e.ID(), Kind: logging.EntityKindEffect},
				loggingeffect.EndedPayload{Kind: e.Kind(), Reason: e.Reason(), Hits: e.Hits()})
			continue
		}
		filtered = append(filtered, e)
	}
	m.entities = filtered

	m.advanceScheduled(dt)
}
