// Package status tracks timed conditions on actors: one record per
// (actor, kind), refreshed on re-application rather than stacked.
package status

import "strings"

type Kind string

const (
	KindBurning  Kind = "burning"
	KindFrozen   Kind = "frozen"
	KindStunned  Kind = "stunned"
	KindPoisoned Kind = "poisoned"
	KindShocked  Kind = "shocked"
	KindSlowed   Kind = "slowed"
	KindFeared   Kind = "feared"
	KindWeakened Kind = "weakened"
)

// priorityOrder fixes visual/behavioral precedence when several statuses are
// active at once. Earlier wins.
var priorityOrder = []Kind{
	KindBurning,
	KindFrozen,
	KindStunned,
	KindPoisoned,
	KindShocked,
	KindSlowed,
	KindFeared,
	KindWeakened,
}

// aliases maps the free-text spellings authoring tools produce onto canonical
// kinds. Lookup is case-insensitive.
var aliases = map[string]Kind{
	"burning":   KindBurning,
	"burn":      KindBurning,
	"ignite":    KindBurning,
	"fire":      KindBurning,
	"frozen":    KindFrozen,
	"freeze":    KindFrozen,
	"ice":       KindFrozen,
	"stunned":   KindStunned,
	"stun":      KindStunned,
	"poisoned":  KindPoisoned,
	"poison":    KindPoisoned,
	"toxic":     KindPoisoned,
	"shocked":   KindShocked,
	"shock":     KindShocked,
	"lightning": KindShocked,
	"slowed":    KindSlowed,
	"slow":      KindSlowed,
	"feared":    KindFeared,
	"fear":      KindFeared,
	"terror":    KindFeared,
	"weakened":  KindWeakened,
	"weaken":    KindWeakened,
	"weakness":  KindWeakened,
}

// Normalize resolves a free-text status name to its canonical kind.
func Normalize(name string) (Kind, bool) {
	kind, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return kind, ok
}

// Priority returns the precedence rank of a kind; lower ranks outrank higher
// ones. Unknown kinds sort last.
func Priority(kind Kind) int {
	for i, k := range priorityOrder {
		if k == kind {
			return i
		}
	}
	return len(priorityOrder)
}

// Kinds returns every known kind in priority order.
func Kinds() []Kind {
	out := make([]Kind, len(priorityOrder))
	copy(out, priorityOrder)
	return out
}
