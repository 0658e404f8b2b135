package effects

import (
	"testing"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/internal/status"
	"runecast/server/internal/world"
	"runecast/server/logging"
)

type testRig struct {
	world    *world.World
	statuses *status.Manager
	manager  *Manager
	interp   *Interpreter
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	w := world.New(1000, 1000, logging.NopPublisher())
	statuses := status.NewManager(w, logging.NopPublisher())
	manager := NewManager(w, logging.NopPublisher())
	interp := NewInterpreter(w, statuses, manager, logging.NopPublisher())
	return &testRig{world: w, statuses: statuses, manager: manager, interp: interp}
}

func (r *testRig) addCaster(id string, x, y float64) *world.Actor {
	actor := &world.Actor{
		ID:     id,
		Kind:   world.ActorKindCaster,
		Pos:    geom.Vec2{X: x, Y: y},
		Facing: geom.Vec2{X: 1, Y: 0},
		Radius: 14,
		Health: &world.Health{Current: 100, Max: 100},
	}
	r.world.AddActor(actor)
	return actor
}

func (r *testRig) addDummy(id string, x, y float64) *world.Actor {
	actor := &world.Actor{
		ID:     id,
		Kind:   world.ActorKindDummy,
		Pos:    geom.Vec2{X: x, Y: y},
		Radius: 14,
		Health: &world.Health{Current: 200, Max: 200},
	}
	r.world.AddActor(actor)
	return actor
}

func (r *testRig) castCtx(caster *world.Actor, ability *script.Ability) Context {
	return NewContext(r.world, caster, geom.Vec2{X: 1, Y: 0}, ability)
}

// step advances the runtime in fixed increments, the way the host loop does.
func (r *testRig) step(dt float64, frames int) {
	for i := 0; i < frames; i++ {
		r.world.SetTick(r.world.Tick() + 1)
		r.manager.Advance(dt)
		r.statuses.Advance(dt)
	}
}

func worldRect(x, y, w, h float64) geom.Rect {
	return geom.Rect{X: x, Y: y, Width: w, Height: h}
}

func damageAction(amount float64) *script.Action {
	return &script.Action{
		Name: "damage",
		Args: map[string]any{"amount": amount},
	}
}
