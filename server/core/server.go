package core

import (
	"log"
	"math/rand"
	"sync"

	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/shared/leveldata"
	"github.com/automoto/holdout/systems"
)

const DefaultTickRate = 30

// Config describes one encounter to host.
type Config struct {
	Arena    *leveldata.Arena // nil runs on an empty default arena
	Plan     *cfg.WavePlan
	TickRate int
	Seed     int64
	Workers  int
	// Duration caps simulated seconds; 0 runs until victory or defeat.
	Duration float64
	// Verbose logs every target change and death.
	Verbose bool
}

// Server hosts a single encounter and reports its lifecycle events.
type Server struct {
	sim    *systems.Sim
	ledger *systems.Ledger
	loop   *GameLoop

	stopOnce sync.Once
	verbose  bool
}

// NewServer builds the simulation for c. The encounter does not start
// until Start or Run.
func NewServer(c Config) *Server {
	ledger := systems.NewLedger()
	opts := systems.Options{
		Deps: systems.Deps{
			Game: ledger,
			Rand: rand.New(rand.NewSource(c.Seed)),
		},
		Plan:    c.Plan,
		Workers: c.Workers,
	}
	if c.Arena != nil {
		opts.Width, opts.Height = c.Arena.Width, c.Arena.Height
	}

	sim := systems.NewSim(opts)
	if c.Arena != nil {
		sim.LoadArena(c.Arena)
	}

	s := &Server{
		sim:     sim,
		ledger:  ledger,
		verbose: c.Verbose,
	}
	s.loop = NewGameLoop(sim, c.TickRate)
	s.loop.MaxDuration = c.Duration
	s.subscribe()

	return s
}

func (s *Server) Sim() *systems.Sim { return s.sim }
func (s *Server) Ledger() *systems.Ledger { return s.ledger }
func (s *Server) Done() <-chan struct{} { return s.loop.Done() }
func (s *Server) Outcome() components.Outcome { return s.sim.Outcome() }

// Start begins the encounter and runs the loop in real time on its own
// goroutine.
func (s *Server) Start() {
	s.sim.Start()
	go s.loop.Run()
}

// Run begins the encounter and steps it headless on the calling goroutine
// until it finishes.
func (s *Server) Run() components.Outcome {
	s.sim.Start()
	s.loop.RunHeadless()
	return s.sim.Outcome()
}

// Stop gracefully shuts down the loop.
func (s *Server) Stop() {
	s.stopOnce.Do(s.loop.Stop)
}

func (s *Server) subscribe() {
	w := s.sim.World
	events.WaveStarted.Subscribe(w, func(_ donburi.World, ev events.WaveStartedEvent) {
		log.Printf("[Server] Wave %d/%d %q started (%s)", ev.Wave, ev.Total, ev.Name, ev.Mode)
	})
	events.SubWaveStarted.Subscribe(w, func(_ donburi.World, ev events.SubWaveStartedEvent) {
		log.Printf("[Server] Wave %d: sub-wave %d/%d, %d zombies", ev.Wave, ev.SubWave, ev.Total, ev.Count)
	})
	events.WaveEnded.Subscribe(w, func(_ donburi.World, ev events.WaveEndedEvent) {
		log.Printf("[Server] Wave %d/%d cleared at %.1fs", ev.Wave, ev.Total, s.sim.Now())
	})
	events.RoundCompleted.Subscribe(w, func(_ donburi.World, ev events.RoundCompletedEvent) {
		log.Printf("[Server] Round %d complete: gold=%d level=%d", ev.Round, s.ledger.Gold, s.ledger.Level)
	})
	events.EncounterFinished.Subscribe(w, func(_ donburi.World, ev events.EncounterFinishedEvent) {
		log.Printf("[Server] Encounter finished: %s (%s)", ev.Outcome, ev.Reason)
	})

	if !s.verbose {
		return
	}
	events.AgentDied.Subscribe(w, func(_ donburi.World, ev events.AgentDiedEvent) {
		log.Printf("[Server] %s %v died (wave %d)", ev.Archetype, ev.Entity, ev.Wave)
	})
	events.TargetChanged.Subscribe(w, func(_ donburi.World, ev events.TargetChangedEvent) {
		log.Printf("[Server] Agent %v: %s -> %s", ev.Entity, ev.Previous.Kind, ev.Target.Kind)
	})
}
