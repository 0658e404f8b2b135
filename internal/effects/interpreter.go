package effects

import (
	"context"
	"math"

	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/internal/status"
	"runecast/server/internal/world"
	"runecast/server/logging"
	loggingcombat "runecast/server/logging/combat"
)

// HandlerFunc executes one action kind against a context. Handlers never
// block; all branching is data-driven on the action's arguments.
type HandlerFunc func(in *Interpreter, act *script.Action, ctx Context)

// Interpreter dispatches named actions either to an immediate terminal
// effect or to a delivery-entity spawn. Execution is synchronous and
// reentrant: hook lists invoked from inside an entity's tick call straight
// back into Execute.
type Interpreter struct {
	world     *world.World
	statuses  *status.Manager
	manager   *Manager
	publisher logging.Publisher
	handlers  map[string]HandlerFunc
}

func NewInterpreter(w *world.World, statuses *status.Manager, manager *Manager, publisher logging.Publisher) *Interpreter {
	in := &Interpreter{
		world:     w,
		statuses:  statuses,
		manager:   manager,
		publisher: publisher,
		handlers:  make(map[string]HandlerFunc),
	}
	in.registerBuiltins()
	if manager != nil {
		manager.bind(in)
	}
	return in
}

// Register installs a handler for an action name. Existing handlers are
// replaced, which is the extensibility seam for game-specific actions.
func (in *Interpreter) Register(name string, handler HandlerFunc) {
	if name == "" || handler == nil {
		return
	}
	in.handlers[name] = handler
}

func (in *Interpreter) registerBuiltins() {
	in.Register("damage", execDamage)
	in.Register("heal", execHeal)
	in.Register("apply_status", execApplyStatus)
	in.Register("knockback", execKnockback)
	in.Register("chain", execChain)
	in.Register("spawn_projectile", execSpawnProjectile)
	in.Register("spawn_melee", execSpawnMelee)
	in.Register("spawn_beam", execSpawnBeam)
	in.Register("spawn_area", execSpawnArea)
}

// Execute runs a single action. Malformed or unknown actions are logged and
// skipped; nothing in the steady-state path returns an error.
func (in *Interpreter) Execute(act *script.Action, ctx Context) {
	if in == nil || act == nil {
		return
	}
	if missing := act.MissingArgs(); len(missing) > 0 {
		in.skip(ctx, act.Name, "missing required args", missing)
		return
	}
	handler, ok := in.handlers[act.Name]
	if !ok {
		in.skip(ctx, act.Name, "unknown action", nil)
		return
	}
	handler(in, act, ctx)
}

// ExecuteList runs every action in the list against the same context.
func (in *Interpreter) ExecuteList(list script.ActionList, ctx Context) {
	for _, act := range list {
		in.Execute(act, ctx)
	}
}

func (in *Interpreter) skip(ctx Context, name, reason string, missing []string) {
	loggingcombat.ActionSkipped(context.Background(), in.publisher, in.world.Tick(),
		in.world.EntityRef(ctx.CasterID),
		loggingcombat.SkippedPayload{Action: name, Reason: reason, Missing: missing})
}

func execDamage(in *Interpreter, act *script.Action, ctx Context) {
	amount := act.Float("amount", 0) * in.statuses.DamageDealtScale(ctx.CasterID)
	element := act.String("element", ctx.Element())

	if ctx.TargetID != "" {
		in.world.ApplyDamage(ctx.TargetID, amount, element, ctx.CasterID)
		return
	}
	if act.Has("area_radius") {
		radius := act.Float("area_radius", 0)
		for _, target := range in.world.ActorsWithin(ctx.Origin, radius, ctx.CasterID) {
			in.world.ApplyDamage(target.ID, amount, element, ctx.CasterID)
		}
		return
	}
	in.skip(ctx, act.Name, "no target bound and no area_radius", nil)
}

func execHeal(in *Interpreter, act *script.Action, ctx Context) {
	targetID := ctx.TargetID
	if targetID == "" {
		// A heal with no bound target falls back to the caster.
		targetID = ctx.CasterID
	}
	in.world.ApplyHealing(targetID, act.Float("amount", 0), ctx.CasterID)
}

func execApplyStatus(in *Interpreter, act *script.Action, ctx Context) {
	kind, ok := status.Normalize(act.String("status", ""))
	if !ok {
		in.skip(ctx, act.Name, "unknown status", nil)
		return
	}
	if ctx.TargetID == "" {
		in.skip(ctx, act.Name, "no target bound", nil)
		return
	}
	// The stacks argument is accepted from authored trees but ignored:
	// the canonical rule is refresh, never stack.
	in.statuses.Apply(ctx.TargetID, kind, act.Float("duration", 0), ctx.CasterID)
}

func execKnockback(in *Interpreter, act *script.Action, ctx Context) {
	if ctx.TargetID == "" {
		in.skip(ctx, act.Name, "no target bound", nil)
		return
	}
	amount := act.Float("amount", 0)
	dir := ctx.Dir
	if target, ok := in.world.Actor(ctx.TargetID); ok {
		// Push away from the impact point when the geometry allows it.
		if away := target.Pos.Sub(ctx.Origin); away.Len() > 0 {
			dir = away.Normalized()
		}
	}
	in.world.Nudge(ctx.TargetID, dir.Scale(amount))
}

func execChain(in *Interpreter, act *script.Action, ctx Context) {
	if ctx.TargetID == "" {
		in.skip(ctx, act.Name, "no target bound", nil)
		return
	}
	in.ExecuteList(act.OnHit, ctx)
}

func execSpawnProjectile(in *Interpreter, act *script.Action, ctx Context) {
	count := act.Int("count", 1)
	if count < 1 {
		count = 1
	}
	pattern := act.String("pattern", "spread")
	for _, dir := range projectileDirections(ctx.Dir, count, pattern) {
		in.manager.Insert(newProjectile(in.manager, act, ctx.WithDirection(dir)))
	}
}

func execSpawnMelee(in *Interpreter, act *script.Action, ctx Context) {
	in.manager.Insert(newMelee(in.manager, act, ctx))
}

func execSpawnBeam(in *Interpreter, act *script.Action, ctx Context) {
	in.manager.Insert(newBeam(in.manager, act, ctx))
}

func execSpawnArea(in *Interpreter, act *script.Action, ctx Context) {
	in.manager.Insert(newArea(in.manager, act, ctx))
}

// projectileDirections fans a base aim into count directions. "radial"
// distributes evenly around the full circle; anything else is a spread fan
// with fixed spacing centered on the aim.
func projectileDirections(base geom.Vec2, count int, pattern string) []geom.Vec2 {
	base = base.Normalized()
	if count <= 1 {
		return []geom.Vec2{base}
	}
	dirs := make([]geom.Vec2, 0, count)
	switch pattern {
	case "radial":
		step := 2 * math.Pi / float64(count)
		for i := 0; i < count; i++ {
			dirs = append(dirs, base.Rotated(step*float64(i)))
		}
	default:
		const spacing = 15 * math.Pi / 180
		center := float64(count-1) / 2
		for i := 0; i < count; i++ {
			dirs = append(dirs, base.Rotated((float64(i)-center)*spacing))
		}
	}
	return dirs
}
