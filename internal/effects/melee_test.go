package effects

import (
	"testing"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
)

func meleeAction(shape string, reach float64, extra map[string]any) *script.Action {
	args := map[string]any{"shape": shape, "range": reach}
	for k, v := range extra {
		args[k] = v
	}
	return &script.Action{
		Name:  "spawn_melee",
		Args:  args,
		OnHit: script.ActionList{damageAction(15)},
	}
}

func TestMeleeWindupDelaysCollision(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	dummy := rig.addDummy("dummy", 540, 500)

	act := meleeAction("arc", 60.0, map[string]any{
		"windup_time": 0.2,
		"active_time": 0.3,
	})
	rig.interp.Execute(act, rig.castCtx(caster, nil))

	rig.step(0.05, 3) // 0.15s, still winding up
	if dummy.Health.Current != 200 {
		t.Fatalf("no hits may land during windup, health = %g", dummy.Health.Current)
	}

	rig.step(0.05, 2) // into the active window
	if dummy.Health.Current != 185 {
		t.Fatalf("active swing should hit once for 15, health = %g", dummy.Health.Current)
	}
}

func TestMeleeHitsOncePerActivation(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	dummy := rig.addDummy("dummy", 540, 500)

	act := meleeAction("arc", 60.0, nil)
	rig.interp.Execute(act, rig.castCtx(caster, nil))

	// Run the swing to completion; the target overlaps on every active frame.
	rig.step(0.05, 12)

	if dummy.Health.Current != 185 {
		t.Fatalf("target inside for the whole window must be hit once, health = %g", dummy.Health.Current)
	}
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("swing should expire after windup+active, %d live", got)
	}
}

func TestMeleeArcMissesBehindCaster(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	behind := rig.addDummy("behind", 450, 500)

	act := meleeAction("arc", 60.0, map[string]any{"arc_angle": 90.0})
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 12)

	if behind.Health.Current != 200 {
		t.Fatalf("90 degree forward arc must miss a target behind the caster, health = %g", behind.Health.Current)
	}
}

func TestMeleeCircleHitsAllAround(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	front := rig.addDummy("front", 540, 500)
	behind := rig.addDummy("behind", 460, 500)

	act := meleeAction("circle", 60.0, nil)
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 12)

	if front.Health.Current != 185 || behind.Health.Current != 185 {
		t.Fatalf("circle swing should hit in every direction, got %g and %g",
			front.Health.Current, behind.Health.Current)
	}
}

func TestMeleeRectangleRespectsWidth(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	inLine := rig.addDummy("inline", 550, 500)
	offside := rig.addDummy("offside", 550, 580)

	act := meleeAction("rectangle", 80.0, map[string]any{"width": 40.0})
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 12)

	if inLine.Health.Current != 185 {
		t.Fatalf("target inside the box should be hit, health = %g", inLine.Health.Current)
	}
	if offside.Health.Current != 200 {
		t.Fatalf("target outside the box width should be missed, health = %g", offside.Health.Current)
	}
}

func TestMeleeInvalidShapeFallsBackToArc(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	front := rig.addDummy("front", 540, 500)

	act := meleeAction("hexagon", 60.0, nil)
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 12)

	if front.Health.Current != 185 {
		t.Fatalf("unknown shape should behave as an arc, health = %g", front.Health.Current)
	}
}

func TestMeleeTracksMovingCaster(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	dummy := rig.addDummy("dummy", 640, 500)

	act := meleeAction("arc", 60.0, map[string]any{
		"windup_time": 0.1,
		"active_time": 0.4,
	})
	rig.interp.Execute(act, rig.castCtx(caster, nil))

	rig.step(0.05, 3)
	if dummy.Health.Current != 200 {
		t.Fatalf("target starts out of reach, health = %g", dummy.Health.Current)
	}

	// Caster steps forward mid-swing; the active shape follows.
	caster.Pos = geom.Vec2{X: 580, Y: 500}
	rig.step(0.05, 3)
	if dummy.Health.Current != 185 {
		t.Fatalf("swing anchored to the caster should now connect, health = %g", dummy.Health.Current)
	}
}
