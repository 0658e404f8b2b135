package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"runecast/server/internal/config"
	"runecast/server/internal/effects"
	"runecast/server/internal/feed"
	"runecast/server/internal/geom"
	"runecast/server/internal/script"
	"runecast/server/internal/status"
	"runecast/server/internal/world"
	"runecast/server/logging"
	"runecast/server/logging/sinks"
)

// defaultAbility is cast on repeat when no ability file is configured: a
// fireball that burns on impact.
const defaultAbility = `{
  "name": "fire bolt",
  "element": "fire",
  "actions": [
    {
      "action": "spawn_projectile",
      "args": {"speed": 400, "count": 1},
      "on_hit": [
        {"action": "damage", "args": {"amount": 20, "element": "fire"}},
        {"action": "apply_status", "args": {"status": "burning", "duration": 3.0}}
      ]
    }
  ]
}`

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	spectators := feed.New(log.Default())
	routerCfg := logging.DefaultConfig()
	routerCfg.MinimumSeverity = logging.ParseSeverity(cfg.LogSeverity)
	router := logging.NewRouter(nil, routerCfg, []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout)},
		{Name: "feed", Sink: spectators},
	})

	w := world.New(cfg.WorldWidth, cfg.WorldHeight, router)
	caster := seedWorld(w)

	statuses := status.NewManager(w, router)
	manager := effects.NewManager(w, router)
	effects.NewInterpreter(w, statuses, manager, router)

	ability, err := loadAbility(cfg.AbilityPath)
	if err != nil {
		log.Fatalf("load ability: %v", err)
	}

	castCtx := effects.NewContext(w, caster, geom.Vec2{X: 1, Y: 0}, ability)
	if !manager.Schedule(ability.Actions, castCtx, cfg.CastRepeats, cfg.CastInterval) {
		log.Fatalf("rejected cast schedule: repeats=%d interval=%g", cfg.CastRepeats, cfg.CastInterval)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", spectators.Handle)
	server := &http.Server{Addr: cfg.FeedAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("feed server stopped: %v", err)
		}
	}()
	log.Printf("spectator feed on %s/feed", cfg.FeedAddr)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	dt := 1.0 / float64(cfg.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRate))
	defer ticker.Stop()

	var tick uint64
	for {
		select {
		case <-stop:
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			server.Shutdown(shutdownCtx)
			router.Close(shutdownCtx)
			cancel()
			return
		case <-ticker.C:
			tick++
			w.SetTick(tick)
			manager.Advance(dt)
			statuses.Advance(dt)
			applyMovement(w, statuses, dt)
		}
	}
}

func seedWorld(w *world.World) *world.Actor {
	caster := &world.Actor{
		ID:     "caster-1",
		Kind:   world.ActorKindCaster,
		Pos:    geom.Vec2{X: 100, Y: 300},
		Facing: geom.Vec2{X: 1, Y: 0},
		Radius: 14,
		Health: &world.Health{Current: 100, Max: 100},
	}
	w.AddActor(caster)

	for i, pos := range []geom.Vec2{{X: 300, Y: 300}, {X: 420, Y: 260}, {X: 520, Y: 340}} {
		w.AddActor(&world.Actor{
			ID:     fmt.Sprintf("dummy-%d", i+1),
			Kind:   world.ActorKindDummy,
			Pos:    pos,
			Radius: 14,
			Health: &world.Health{Current: 200, Max: 200},
		})
	}

	w.AddObstacle(world.Obstacle{Rect: geom.Rect{X: 600, Y: 250, Width: 40, Height: 100}})
	return caster
}

func loadAbility(path string) (*script.Ability, error) {
	if path == "" {
		return script.ParseAbility([]byte(defaultAbility))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return script.ParseAbility(data)
}

// applyMovement integrates actor intents with the status manager's movement
// modifiers: rooted actors stand still, slowed actors crawl, feared actors
// run the wrong way.
func applyMovement(w *world.World, statuses *status.Manager, dt float64) {
	for _, actor := range w.Actors() {
		if !actor.Alive() || actor.MoveSpeed <= 0 {
			continue
		}
		intent := actor.MoveIntent
		if intent.Len() == 0 {
			continue
		}
		scale := statuses.MovementScale(actor.ID)
		if scale == 0 {
			continue
		}
		if statuses.MovementInverted(actor.ID) {
			intent = intent.Scale(-1)
		}
		w.Nudge(actor.ID, intent.Normalized().Scale(actor.MoveSpeed*scale*dt))
	}
}
