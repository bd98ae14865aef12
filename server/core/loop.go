package core

import (
	"log"
	"time"

	"github.com/automoto/holdout/systems"
)

// GameLoop drives a simulation at a fixed tick rate until it is stopped, the
// encounter is decided or MaxDuration simulated seconds have passed.
type GameLoop struct {
	sim      *systems.Sim
	tickRate int
	running  bool
	stopChan chan struct{}
	done     chan struct{}

	// MaxDuration caps the simulated time; 0 runs until the encounter ends.
	MaxDuration float64
}

func NewGameLoop(sim *systems.Sim, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &GameLoop{
		sim:      sim,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks the simulation in real time. It returns when the loop finishes.
func (g *GameLoop) Run() {
	defer close(g.done)
	g.running = true
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.running = false
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			if g.tick() {
				g.running = false
				log.Println("Game loop finished")
				return
			}
		}
	}
}

// RunHeadless ticks the simulation as fast as possible with the same fixed
// step Run uses.
func (g *GameLoop) RunHeadless() {
	defer close(g.done)
	g.running = true
	defer func() { g.running = false }()

	for {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		default:
		}
		if g.tick() {
			return
		}
	}
}

// Stop ends Run or RunHeadless. It is safe to call once.
func (g *GameLoop) Stop() {
	close(g.stopChan)
}

// Done is closed when the loop has returned.
func (g *GameLoop) Done() <-chan struct{} {
	return g.done
}

// Step returns the fixed simulation step in seconds.
func (g *GameLoop) Step() float64 {
	return 1 / float64(g.tickRate)
}

// tick advances the simulation one step and reports whether the loop
// should end.
func (g *GameLoop) tick() bool {
	g.sim.Update(g.Step())

	if g.sim.Encounter.Over() {
		return true
	}
	return g.MaxDuration > 0 && g.sim.Now() >= g.MaxDuration
}
