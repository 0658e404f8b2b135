package effects

import "runecast/server/internal/script"

// scheduledGroup is one pending (re-)execution of an action list. The first
// firing happens a full interval after scheduling, never immediately.
type scheduledGroup struct {
	actions   script.ActionList
	ctx       Context
	remaining float64
	interval  float64
	repeats   int
}

// Schedule queues actions to run against ctx after interval seconds,
// repeating until repeats firings have happened. Empty lists, non-positive
// repeat counts, and non-positive intervals are rejected by simply not
// registering the request.
func (m *Manager) Schedule(actions script.ActionList, ctx Context, repeats int, interval float64) bool {
	if len(actions) == 0 || repeats <= 0 || interval <= 0 {
		return false
	}
	m.groups = append(m.groups, &scheduledGroup{
		actions:   actions,
		ctx:       ctx,
		remaining: interval,
		interval:  interval,
		repeats:   repeats,
	})
	return true
}

// ScheduledCount reports how many groups are still queued.
func (m *Manager) ScheduledCount() int {
	return len(m.groups)
}

// advanceScheduled walks the queue from the end backward so a group can be
// removed in the same pass its last firing happens.
func (m *Manager) advanceScheduled(dt float64) {
	for i := len(m.groups) - 1; i >= 0; i-- {
		group := m.groups[i]
		group.remaining -= dt
		if group.remaining > 0 {
			continue
		}
		m.interpreter.ExecuteList(group.actions, group.ctx)
		group.repeats--
		if group.repeats <= 0 {
			m.groups = append(m.groups[:i], m.groups[i+1:]...)
			continue
		}
		group.remaining = group.interval
	}
}
