package effects

import (
	"math"
	"testing"

	"runecast/server/internal/script"
	"runecast/server/internal/status"
)

const fireboltJSON = `{
  "name": "fire bolt",
  "element": "fire",
  "actions": [
    {
      "action": "spawn_projectile",
      "args": {"speed": 400},
      "on_hit": [
        {"action": "damage", "args": {"amount": 20, "element": "fire"}},
        {"action": "apply_status", "args": {"status": "burning", "duration": 3.0}}
      ]
    }
  ]
}`

// TestFireboltScenario runs a full authored cast through the runtime: a
// projectile crosses the gap in about a quarter second, lands its damage, and
// leaves the target burning.
func TestFireboltScenario(t *testing.T) {
	t.Parallel()

	ability, err := script.ParseAbility([]byte(fireboltJSON))
	if err != nil {
		t.Fatalf("parse ability: %v", err)
	}

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 100, 500)
	dummy := rig.addDummy("dummy", 200, 500)

	ctx := rig.castCtx(caster, ability)
	rig.interp.ExecuteList(ability.Actions, ctx)

	if got := rig.manager.ActiveEntities(); got != 1 {
		t.Fatalf("cast should spawn a projectile, %d live", got)
	}

	dt := 1.0 / 30.0
	var impactAt float64
	for frame := 1; frame <= 30; frame++ {
		rig.step(dt, 1)
		if impactAt == 0 && dummy.Health.Current < 200 {
			impactAt = float64(frame) * dt
		}
	}

	// 100 units at 400 units/s, minus the body radii, is roughly a quarter
	// second of flight.
	if impactAt == 0 || math.Abs(impactAt-0.25) > 0.1 {
		t.Fatalf("impact at %gs, want about 0.25s", impactAt)
	}
	if dummy.Health.Current >= 180 {
		t.Fatalf("expected 20 impact damage plus burn ticks, health = %g", dummy.Health.Current)
	}
	if !rig.statuses.HasStatus("dummy", status.KindBurning) {
		t.Fatalf("target should be burning after the hit")
	}
	if got := rig.manager.ActiveEntities(); got != 0 {
		t.Fatalf("projectile should be destroyed on impact, %d live", got)
	}
}

// TestExplosiveTrapScenario exercises nesting: a scheduled cast drops an area
// whose expiry detonates, chaining damage and a slow onto whoever is inside.
func TestExplosiveTrapScenario(t *testing.T) {
	t.Parallel()

	const trapJSON = `{
	  "name": "explosive trap",
	  "element": "fire",
	  "actions": [
	    {
	      "action": "spawn_area",
	      "args": {"radius": 90, "duration": 1.5},
	      "on_expire": [
	        {"action": "damage", "args": {"amount": 30, "area_radius": 120}},
	        {"action": "apply_status", "args": {"status": "slow", "duration": 2.0}}
	      ]
	    }
	  ]
	}`
	ability, err := script.ParseAbility([]byte(trapJSON))
	if err != nil {
		t.Fatalf("parse ability: %v", err)
	}

	rig := newTestRig(t)
	caster := rig.addCaster("caster", 500, 500)
	victim := rig.addDummy("victim", 560, 500)

	ctx := rig.castCtx(caster, ability)
	if !rig.manager.Schedule(ability.Actions, ctx, 1, 0.5) {
		t.Fatalf("schedule rejected")
	}

	rig.step(0.05, 45) // 2.25s: cast at 0.5s, detonation at 2.0s

	if victim.Health.Current != 170 {
		t.Fatalf("detonation should deal 30, health = %g", victim.Health.Current)
	}
	if !rig.statuses.HasStatus("victim", status.KindSlowed) {
		t.Fatalf("detonation should slow the victim")
	}
	if got := rig.statuses.MovementScale("victim"); got != 0.5 {
		t.Fatalf("slowed movement scale = %g, want 0.5", got)
	}
}
