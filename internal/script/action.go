// Package script models the declarative ability trees consumed by the effect
// interpreter. Trees arrive as opaque JSON authored by external tooling; this
// package only decodes the structure and exposes typed argument access; it
// never interprets behavior.
package script

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ActionList is an ordered group of actions executed against one context.
type ActionList []*Action

// Action is one named operation with its arguments and optional nested hook
// lists. Actions are immutable once decoded; the hook lists are only
// meaningful on actions that spawn a delivery entity.
type Action struct {
	Name     string         `json:"action" jsonschema:"title=Action name,description=Operation tag resolved against the interpreter registry"`
	Args     map[string]any `json:"args,omitempty" jsonschema:"description=Named argument values for the action"`
	OnHit    ActionList     `json:"on_hit,omitempty" jsonschema:"description=Actions run per target hit by the spawned entity"`
	OnTick   ActionList     `json:"on_tick,omitempty" jsonschema:"description=Actions run per target at each area tick"`
	OnEnter  ActionList     `json:"on_enter,omitempty" jsonschema:"description=Actions run once per target entering an area"`
	OnExpire ActionList     `json:"on_expire,omitempty" jsonschema:"description=Actions run when a spawned entity expires"`
}

// Ability bundles a decoded tree with the authoring metadata carried
// alongside it. Element is a cosmetic tag only; the runtime uses it to fill
// in a default element on damage actions that omit one.
type Ability struct {
	ID      string     `json:"id,omitempty"`
	Name    string     `json:"name,omitempty"`
	Element string     `json:"element,omitempty"`
	Actions ActionList `json:"actions"`
}

// ParseAbility decodes an authored ability document.
func ParseAbility(data []byte) (*Ability, error) {
	var ability Ability
	if err := json.Unmarshal(data, &ability); err != nil {
		return nil, fmt.Errorf("script: decode ability: %w", err)
	}
	if len(ability.Actions) == 0 {
		return nil, fmt.Errorf("script: ability %q has no actions", ability.Name)
	}
	return &ability, nil
}

// Float reads a numeric argument, tolerating the loose typing JSON authoring
// produces (float64, int, numeric string).
func (a *Action) Float(key string, fallback float64) float64 {
	if a == nil || a.Args == nil {
		return fallback
	}
	switch v := a.Args[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// Int reads an integer argument.
func (a *Action) Int(key string, fallback int) int {
	if !a.Has(key) {
		return fallback
	}
	return int(a.Float(key, float64(fallback)))
}

// String reads a string argument.
func (a *Action) String(key, fallback string) string {
	if a == nil || a.Args == nil {
		return fallback
	}
	if v, ok := a.Args[key].(string); ok {
		return v
	}
	return fallback
}

// Bool reads a boolean argument, accepting the "true"/1 spellings authoring
// tools emit.
func (a *Action) Bool(key string, fallback bool) bool {
	if a == nil || a.Args == nil {
		return fallback
	}
	switch v := a.Args[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return strings.EqualFold(v, "true")
	}
	return fallback
}

// Has reports whether the argument is present at all, independent of type.
func (a *Action) Has(key string) bool {
	if a == nil || a.Args == nil {
		return false
	}
	_, ok := a.Args[key]
	return ok
}

// requiredArgs lists the arguments an action must carry to be executable.
// Unknown action names are not an authoring error here; the interpreter logs
// and skips them at run time.
var requiredArgs = map[string][]string{
	"damage":           {"amount"},
	"heal":             {"amount"},
	"apply_status":     {"status", "duration"},
	"knockback":        {"amount"},
	"spawn_projectile": {"speed"},
	"spawn_melee":      {"shape", "range"},
	"spawn_beam":       {"length", "width", "duration"},
	"spawn_area":       {"radius", "duration"},
}

// MissingArgs returns the required arguments absent from the action, or nil
// when the action is complete or its name is unknown.
func (a *Action) MissingArgs() []string {
	if a == nil {
		return nil
	}
	required, ok := requiredArgs[a.Name]
	if !ok {
		return nil
	}
	var missing []string
	for _, key := range required {
		if !a.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}

// Hooks returns the named nested list, matching the JSON field names.
func (a *Action) Hooks(name string) ActionList {
	if a == nil {
		return nil
	}
	switch name {
	case "on_hit":
		return a.OnHit
	case "on_tick":
		return a.OnTick
	case "on_enter":
		return a.OnEnter
	case "on_expire":
		return a.OnExpire
	}
	return nil
}
