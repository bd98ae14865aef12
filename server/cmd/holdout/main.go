package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/automoto/holdout/assets"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/server/core"
	"github.com/automoto/holdout/shared/leveldata"
	"github.com/automoto/holdout/systems"
)

const appName = "holdout"

func main() {
	mapName := flag.String("map", "courtyard", "Bundled arena name or path to a .tmx file (empty = open field)")
	planName := flag.String("plan", "default", "Bundled wave plan name or path to a .yaml file")
	storedPlan := flag.String("stored-plan", "", "Load the wave plan saved under this name instead of -plan")
	savePlan := flag.String("save-plan", "", "Save the loaded wave plan under this name")
	tickRate := flag.Int("tickrate", core.DefaultTickRate, "Simulation tick rate (updates per second)")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	workers := flag.Int("workers", 0, "Target selection workers (0 = config default)")
	duration := flag.Float64("duration", 900, "Stop after this many simulated seconds (0 = until the encounter ends)")
	realtime := flag.Bool("realtime", false, "Tick at wall-clock speed instead of as fast as possible")
	verbose := flag.Bool("verbose", false, "Log deaths and target changes")
	flag.Parse()

	cfg.Debug.LogSpawns = *verbose
	cfg.Debug.LogTargeting = *verbose

	arena, err := loadArena(*mapName)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}
	plan, err := loadPlan(*planName, *storedPlan)
	if err != nil {
		log.Fatalf("Failed to load wave plan: %v", err)
	}
	if *savePlan != "" {
		if err := storePlan(*savePlan, plan); err != nil {
			log.Fatalf("Failed to save wave plan: %v", err)
		}
	}

	server := core.NewServer(core.Config{
		Arena:    arena,
		Plan:     plan,
		TickRate: *tickRate,
		Seed:     *seed,
		Workers:  *workers,
		Duration: *duration,
		Verbose:  *verbose,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		server.Stop()
	}()

	log.Printf("Starting holdout on %q with plan %q (%d waves, tick rate: %d/s, seed: %d)",
		arenaName(arena), plan.Name, len(plan.Waves), *tickRate, *seed)

	if *realtime {
		server.Start()
		<-server.Done()
	} else {
		server.Run()
	}

	ledger := server.Ledger()
	log.Printf("Result: %s after %.1fs, waves %d/%d, gold %d, level %d",
		server.Outcome(), server.Sim().Now(), server.Sim().Waves.CurrentWave(), server.Sim().Waves.TotalWaves(),
		ledger.Gold, ledger.Level)
}

func loadArena(name string) (*leveldata.Arena, error) {
	switch {
	case name == "":
		return nil, nil
	case strings.HasSuffix(name, ".tmx"):
		return core.LoadArenaFile(name)
	default:
		return assets.LoadArena(name)
	}
}

func arenaName(a *leveldata.Arena) string {
	if a == nil {
		return "open field"
	}
	return a.Name
}

func loadPlan(name, stored string) (*cfg.WavePlan, error) {
	if stored != "" {
		store, err := systems.OpenPlanStore(appName)
		if err != nil {
			return nil, err
		}
		plan, err := store.Load(stored)
		if err != nil {
			return nil, err
		}
		if plan != nil {
			return plan, nil
		}
		log.Printf("No stored plan %q, falling back to %q", stored, name)
	}
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return cfg.LoadWavePlan(name)
	}
	return assets.LoadPlan(name)
}

func storePlan(name string, plan *cfg.WavePlan) error {
	store, err := systems.OpenPlanStore(appName)
	if err != nil {
		return err
	}
	return store.Save(name, plan)
}
