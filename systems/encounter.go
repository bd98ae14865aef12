package systems

import (
	"log"

	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/events"
)

// EncounterCoordinator decides the outcome of an encounter and forwards
// round and result notifications to the game manager.
type EncounterCoordinator struct {
	sim   *Sim
	entry *donburi.Entry
}

func newEncounterCoordinator(s *Sim, entry *donburi.Entry) *EncounterCoordinator {
	return &EncounterCoordinator{sim: s, entry: entry}
}

// State returns the encounter singleton.
func (c *EncounterCoordinator) State() *components.EncounterData {
	return components.Encounter.Get(c.entry)
}

func (c *EncounterCoordinator) Outcome() components.Outcome { return c.State().Outcome }

// Over reports whether the encounter has been decided.
func (c *EncounterCoordinator) Over() bool {
	return c.State().Outcome != components.OutcomeInProgress
}

// RoundComplete reports the end of round n.
func (c *EncounterCoordinator) RoundComplete(n int) {
	if c.Over() {
		return
	}
	c.State().RoundsCompleted = n
	c.sim.Deps.Game.RoundComplete(n)
	events.RoundCompleted.Publish(c.sim.World, events.RoundCompletedEvent{Round: n})
}

// Victory ends the encounter as won. Only the first decision counts.
func (c *EncounterCoordinator) Victory() {
	if !c.finish(components.OutcomeVictory, "all waves cleared") {
		return
	}
	c.sim.Deps.Game.GameWon()
}

// Defeat ends the encounter as lost. Only the first decision counts.
func (c *EncounterCoordinator) Defeat(reason string) {
	if !c.finish(components.OutcomeDefeat, reason) {
		return
	}
	c.sim.Deps.Game.GameOver()
}

func (c *EncounterCoordinator) finish(outcome components.Outcome, reason string) bool {
	if c.Over() {
		return false
	}
	state := c.State()
	state.Outcome = outcome
	state.Reason = reason
	state.FinishedAt = c.sim.Now()

	events.EncounterFinished.Publish(c.sim.World, events.EncounterFinishedEvent{Outcome: outcome, Reason: reason})
	log.Printf("[Encounter] %s at %.1fs: %s", outcome, state.FinishedAt, reason)

	if c.sim.Waves != nil {
		c.sim.Waves.Stop()
	}
	return true
}
