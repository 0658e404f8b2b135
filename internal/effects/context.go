package effects

import (
	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/internal/world"
)

// Context is the immutable snapshot passed through every action execution.
// Caster and target are weak string handles resolved against the world on
// use; a stale handle degrades to a missed hit. Contexts are never mutated:
// each hit derives a fresh copy overriding only position and target.
type Context struct {
	Origin   geom.Vec2
	Dir      geom.Vec2
	CasterID string
	TargetID string
	World    *world.World
	Ability  *script.Ability
}

// NewContext builds the root context for one cast.
func NewContext(w *world.World, caster *world.Actor, aim geom.Vec2, ability *script.Ability) Context {
	ctx := Context{
		Dir:     aim.Normalized(),
		World:   w,
		Ability: ability,
	}
	if caster != nil {
		ctx.Origin = caster.Pos
		ctx.CasterID = caster.ID
	}
	return ctx
}

// WithImpact derives a context for a hit: position and target change, caster,
// world, and ability metadata are preserved.
func (c Context) WithImpact(pos geom.Vec2, targetID string) Context {
	derived := c
	derived.Origin = pos
	derived.TargetID = targetID
	return derived
}

// WithDirection derives a context with a new aim direction.
func (c Context) WithDirection(dir geom.Vec2) Context {
	derived := c
	derived.Dir = dir.Normalized()
	return derived
}

// Element returns the ability's cosmetic element tag, if any. Damage actions
// without an explicit element inherit it.
func (c Context) Element() string {
	if c.Ability == nil {
		return ""
	}
	return c.Ability.Element
}
