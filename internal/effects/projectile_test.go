package effects

import (
	"testing"

	"runecast/server/internal/script"
	"runecast/server/internal/world"
)

func TestProjectileHitsTargetOnce(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 500)
	dummy := rig.addDummy("dummy", 100, 500)

	act := &script.Action{
		Name:  "spawn_projectile",
		Args:  map[string]any{"speed": 400.0},
		OnHit: script.ActionList{damageAction(20)},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))

	if got := rig.manager.ActiveEntities(); got != 1 {
		t.Fatalf("expected 1 live projectile, got %d", got)
	}

	rig.step(0.05, 20)

	if got := dummy.Health.Current; got != 180 {
		t.Fatalf("expected a single 20 damage hit, health = %g", got)
	}
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("expected projectile pruned after impact, %d live", got)
	}
}

func TestProjectileNonPiercingStopsAtFirstTarget(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 500)
	near := rig.addDummy("near", 100, 500)
	far := rig.addDummy("far", 200, 500)

	act := &script.Action{
		Name:  "spawn_projectile",
		Args:  map[string]any{"speed": 400.0},
		OnHit: script.ActionList{damageAction(20)},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 20)

	if near.Health.Current != 180 {
		t.Fatalf("near target health = %g, want 180", near.Health.Current)
	}
	if far.Health.Current != 200 {
		t.Fatalf("far target should be untouched, health = %g", far.Health.Current)
	}
}

func TestProjectilePierceBudget(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 500)
	first := rig.addDummy("first", 100, 500)
	second := rig.addDummy("second", 160, 500)
	third := rig.addDummy("third", 220, 500)

	act := &script.Action{
		Name: "spawn_projectile",
		Args: map[string]any{
			"speed":           400.0,
			"piercing":        true,
			"max_pierce_hits": 2,
		},
		OnHit: script.ActionList{damageAction(20)},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 20)

	if first.Health.Current != 180 || second.Health.Current != 180 {
		t.Fatalf("pierce should damage the first two targets, got %g and %g",
			first.Health.Current, second.Health.Current)
	}
	if third.Health.Current != 200 {
		t.Fatalf("third target beyond the pierce budget should survive, health = %g", third.Health.Current)
	}
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("projectile should be destroyed on its final pierce hit, %d live", got)
	}
}

func TestProjectilePiercingPassesThrough(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 500)
	first := rig.addDummy("first", 100, 500)
	second := rig.addDummy("second", 200, 500)

	act := &script.Action{
		Name: "spawn_projectile",
		Args: map[string]any{
			"speed":           400.0,
			"piercing":        true,
			"max_pierce_hits": 5,
		},
		OnHit: script.ActionList{damageAction(20)},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 20)

	if first.Health.Current != 180 || second.Health.Current != 180 {
		t.Fatalf("both in-line targets should be hit exactly once, got %g and %g",
			first.Health.Current, second.Health.Current)
	}
}

func TestProjectileStopsAtObstacle(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 300)
	dummy := rig.addDummy("dummy", 400, 300)
	rig.world.AddObstacle(world.Obstacle{Rect: worldRect(200, 250, 40, 100)})

	act := &script.Action{
		Name:  "spawn_projectile",
		Args:  map[string]any{"speed": 400.0, "piercing": true},
		OnHit: script.ActionList{damageAction(20)},
	}
	ctx := rig.castCtx(caster, nil)
	rig.interp.Execute(act, ctx)
	rig.step(0.05, 30)

	if dummy.Health.Current != 200 {
		t.Fatalf("target behind an obstacle must not be hit, health = %g", dummy.Health.Current)
	}
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("projectile should be destroyed on the obstacle, %d live", got)
	}
}

func TestProjectilePassesPierceableObstacle(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 0, 300)
	dummy := rig.addDummy("dummy", 400, 300)
	rig.world.AddObstacle(world.Obstacle{Rect: worldRect(200, 250, 40, 100), Pierceable: true})

	act := &script.Action{
		Name:  "spawn_projectile",
		Args:  map[string]any{"speed": 400.0},
		OnHit: script.ActionList{damageAction(20)},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))
	rig.step(0.05, 30)

	if dummy.Health.Current != 180 {
		t.Fatalf("pierceable obstacle must not stop the projectile, health = %g", dummy.Health.Current)
	}
}

func TestProjectileExpiresWithoutTargets(t *testing.T) {
	t.Parallel()

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)

	act := &script.Action{
		Name: "spawn_projectile",
		Args: map[string]any{"speed": 50.0},
	}
	rig.interp.Execute(act, rig.castCtx(caster, nil))

	rig.step(0.1, 41)
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("projectile should expire after its max lifetime, %d live", got)
	}
}

func TestClampSpeed(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   float64
		want float64
	}{
		{10, 50},
		{50, 50},
		{400, 400},
		{1200, 1200},
		{5000, 1200},
	}
	for _, tc := range cases {
		if got := clampSpeed(tc.in); got != tc.want {
			t.Fatalf("clampSpeed(%g) = %g, want %g", tc.in, got, tc.want)
		}
	}
}
