// Package events declares the world-scoped events the simulation publishes.
// Events are queued on publish and delivered when the tick ends, so
// subscribers never run while systems iterate the world.
package events

import (
	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type WaveStartedEvent struct {
	Wave  int // 1-indexed
	Total int
	Name  string
	Mode  config.WaveMode
}

type WaveEndedEvent struct {
	Wave  int
	Total int
}

type SubWaveStartedEvent struct {
	Wave    int
	SubWave int
	Total   int
	Count   int
}

type CountdownChangedEvent struct {
	Remaining float64
}

type ZombieCountChangedEvent struct {
	Remaining int
	Total     int
}

type AgentDiedEvent struct {
	Entity    donburi.Entity
	Archetype config.Archetype
	Wave      int
}

type TargetChangedEvent struct {
	Entity   donburi.Entity
	Previous components.Target
	Target   components.Target
}

type RoundCompletedEvent struct {
	Round int
}

type EncounterFinishedEvent struct {
	Outcome components.Outcome
	Reason  string
}

var (
	WaveStarted        = events.NewEventType[WaveStartedEvent]()
	WaveEnded          = events.NewEventType[WaveEndedEvent]()
	SubWaveStarted     = events.NewEventType[SubWaveStartedEvent]()
	CountdownChanged   = events.NewEventType[CountdownChangedEvent]()
	ZombieCountChanged = events.NewEventType[ZombieCountChangedEvent]()
	AgentDied          = events.NewEventType[AgentDiedEvent]()
	TargetChanged      = events.NewEventType[TargetChangedEvent]()
	RoundCompleted     = events.NewEventType[RoundCompletedEvent]()
	EncounterFinished  = events.NewEventType[EncounterFinishedEvent]()
)

// Flush delivers every queued event in the world.
func Flush(w donburi.World) {
	events.ProcessAllEvents(w)
}
