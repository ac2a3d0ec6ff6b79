// Package main provides the encounter simulator for the elite ability engine.
// It wires together configuration, content, scripting, and the coordinator,
// then runs a scripted encounter on the discrete tick loop.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/config"
	"github.com/RedNetty/YakRealms-sub014/internal/game/dice"
	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
	"github.com/RedNetty/YakRealms-sub014/internal/game/world"
	"github.com/RedNetty/YakRealms-sub014/internal/observability"
	"github.com/RedNetty/YakRealms-sub014/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/sim.yaml", "path to configuration file")
	abilitiesDir := flag.String("abilities", "content/abilities", "path to ability YAML files directory")
	archetypesDir := flag.String("archetypes", "content/archetypes", "path to archetype YAML files directory")
	scriptsDir := flag.String("scripts", "content/scripts", "path to per-archetype Lua gate scripts")
	arenaPath := flag.String("arena", "content/arenas/scorched_hollow.yaml", "path to the arena terrain YAML file")
	ticks := flag.Int("ticks", 600, "number of simulation ticks to run")
	realtime := flag.Bool("realtime", false, "pace ticks at the configured interval instead of running flat out")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting elite encounter simulator",
		zap.Int("ticks", *ticks),
		zap.Int("tick_interval_ms", cfg.Simulation.TickIntervalMs),
	)

	catalog := elite.NewCatalog(logger)
	if err := catalog.LoadContent(*abilitiesDir, *archetypesDir); err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	logger.Info("catalog loaded",
		zap.Int("abilities", catalog.Size()),
		zap.Int("archetypes", len(catalog.Archetypes())),
	)

	scripts := scripting.NewManager(logger)
	defer scripts.Close()
	for _, arch := range catalog.Archetypes() {
		dir := filepath.Join(*scriptsDir, string(arch))
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		if err := scripts.LoadArchetype(string(arch), dir, cfg.Elite.ScriptInstructionLimit); err != nil {
			logger.Fatal("loading gate scripts", zap.String("archetype", string(arch)), zap.Error(err))
		}
	}

	arena, err := world.LoadArenaFromFile(*arenaPath)
	if err != nil {
		logger.Fatal("loading arena", zap.Error(err))
	}
	logger.Info("arena loaded",
		zap.String("arena", arena.Name),
		zap.Int("features", len(arena.Features)),
	)

	enc := newEncounter(logger)
	src := dice.NewCryptoSource()
	coordinator := elite.NewCoordinator(
		cfg.Elite,
		catalog,
		elite.NewAnalyzer(arena.Sample),
		src,
		dice.NewLoggedRoller(src, logger),
		enc,
		enc,
		enc.resolve,
		scripts,
		logger,
	)
	for _, cb := range enc.combatants {
		coordinator.InitializeFor(cb)
	}

	var ticker *time.Ticker
	if *realtime {
		ticker = time.NewTicker(time.Duration(cfg.Simulation.TickIntervalMs) * time.Millisecond)
		defer ticker.Stop()
	}

	for i := 0; i < *ticks; i++ {
		if ticker != nil {
			<-ticker.C
		}
		for _, cb := range enc.combatants {
			coordinator.Evaluate(cb, enc.liveTargets())
		}
		coordinator.Advance()
	}

	for _, cb := range enc.combatants {
		logger.Info("combatant summary",
			zap.String("combatant", cb.Name),
			zap.String("archetype", string(cb.Archetype)),
			zap.Int("abilities_used", coordinator.UsageCount(cb.ID)),
			zap.Bool("active", coordinator.HasActiveAbility(cb.ID)),
		)
	}
	for _, t := range enc.targets {
		logger.Info("target summary",
			zap.String("target", t.Name),
			zap.Float64("health", t.HealthFraction),
		)
	}
	logger.Info("simulation complete",
		zap.Int64("final_tick", coordinator.CurrentTick()),
		zap.Duration("elapsed", time.Since(start)),
	)
}
