package systems

import (
	"log"

	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/tags"
)

// UpdateCombat drains queued damage events. Entries are collected first so
// deaths can change archetypes without disturbing the query.
func UpdateCombat(s *Sim) {
	type hit struct {
		entry  *donburi.Entry
		amount float64
	}
	var hits []hit
	for e := range components.DamageEvent.Iter(s.World) {
		hits = append(hits, hit{entry: e, amount: components.DamageEvent.Get(e).Amount})
	}

	for _, h := range hits {
		// Remove the damage event component so it is processed only once.
		donburi.Remove[components.DamageEventData](h.entry, components.DamageEvent)
		TakeDamage(s, h.entry, h.amount)
	}
}

// QueueDamage adds damage to be applied by the next UpdateCombat. Several
// sources in one tick accumulate.
func QueueDamage(e *donburi.Entry, amount float64, source donburi.Entity) {
	if !e.Valid() || amount <= 0 || e.HasComponent(components.Death) {
		return
	}
	if e.HasComponent(components.DamageEvent) {
		components.DamageEvent.Get(e).Amount += amount
		return
	}
	donburi.Add(e, components.DamageEvent, &components.DamageEventData{Amount: amount, Source: source})
}

// TakeDamage subtracts health and starts the death sequence exactly once
// when it reaches zero. Damage to anything already dead is ignored. It
// reports whether the damage was applied.
func TakeDamage(s *Sim, e *donburi.Entry, amount float64) bool {
	if e == nil || !e.Valid() || amount <= 0 || !e.HasComponent(components.Health) {
		return false
	}
	if e.HasComponent(components.Death) {
		return false
	}
	if e.HasComponent(components.Agent) && !components.Agent.Get(e).Alive() {
		return false
	}

	hp := components.Health.Get(e)
	hp.Current -= amount
	if hp.Current > 0 {
		return true
	}
	hp.Current = 0

	switch {
	case e.HasComponent(components.Agent):
		killAgent(s, e)
	case e.HasComponent(tags.Tower):
		destroyStructure(s, e)
		s.Encounter.Defeat("tower destroyed")
	case e.HasComponent(tags.Player):
		destroyStructure(s, e)
		s.Encounter.Defeat("player died")
	case e.HasComponent(tags.Defense):
		destroyStructure(s, e)
		log.Printf("[Combat] %s destroyed", components.Defense.Get(e).Kind)
	}
	return true
}

// killAgent runs the death side effects of an agent in order: halt, drop
// collision, reward, report the kill, announce the death, roll loot and
// schedule removal.
func killAgent(s *Sim, e *donburi.Entry) {
	agent := components.Agent.Get(e)
	agent.State = components.StateDead
	s.Timers.Cancel(agent.PendingAttack)
	agent.PendingAttack = 0

	// Halt movement
	agent.Path = nil
	agent.HasDestination = false
	agent.Stopped = true
	*components.MovementOverride.Get(e) = components.MovementOverrideData{}

	removeObject(s, e)
	s.snapshotStale = true

	s.Deps.Game.AddGold(agent.Gold)
	s.Deps.Game.AddExperience(agent.Experience)

	s.Waves.ZombieKilled(agent.Wave)

	events.AgentDied.Publish(s.World, events.AgentDiedEvent{
		Entity:    e.Entity(),
		Archetype: agent.Archetype,
		Wave:      agent.Wave,
	})

	if s.Deps.Rand.Float64() < cfg.Combat.LootChance {
		s.Deps.Loot.SpawnLoot(components.Transform.Get(e).Position)
	}

	donburi.Add(e, components.Death, &components.DeathData{Timer: cfg.Combat.DeathRemovalDelay})
}

// destroyStructure takes a tower, player or defense out of play.
func destroyStructure(s *Sim, e *donburi.Entry) {
	removeObject(s, e)
	s.snapshotStale = true
	donburi.Add(e, components.Death, &components.DeathData{})
}

// removeObject takes an entity's collision object out of the space.
func removeObject(s *Sim, e *donburi.Entry) {
	if !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e).Object
	if obj != nil && obj.Space != nil {
		s.Space.Remove(obj)
	}
}
