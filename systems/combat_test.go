package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/systems/factory"
)

func TestTakeDamageIsIdempotentAfterDeath(t *testing.T) {
	s, ledger := newTestSim(t, nil)
	log := recordEvents(s)
	loot := 0
	s.Deps.Loot = LootFunc(func(gamemath.Vec2) { loot++ })

	e := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(10, 10), 1)
	stats := cfg.Zombies[cfg.Shambler]

	assert.True(t, TakeDamage(s, e, 40))
	assert.Equal(t, stats.Health-40, components.Health.Get(e).Current)
	assert.Zero(t, ledger.Gold)

	assert.True(t, TakeDamage(s, e, 1000))
	assert.False(t, components.Agent.Get(e).Alive())
	assert.Equal(t, 0.0, components.Health.Get(e).Current)
	assert.True(t, e.HasComponent(components.Death))
	assert.NotContains(t, s.Space.Objects(), components.Object.Get(e).Object, "collision is disabled on death")

	lootAfterDeath := loot
	for i := 0; i < 5; i++ {
		assert.False(t, TakeDamage(s, e, 50))
	}
	events.Flush(s.World)

	assert.Equal(t, stats.Gold, ledger.Gold)
	assert.Equal(t, stats.Experience, ledger.Experience)
	assert.Len(t, log.died, 1)
	assert.Equal(t, lootAfterDeath, loot)
	assert.LessOrEqual(t, loot, 1)
}

func TestQueuedDamageAccumulates(t *testing.T) {
	s, _ := newTestSim(t, nil)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))

	QueueDamage(tower, 10, 0)
	QueueDamage(tower, 15, 0)
	assert.Equal(t, 25.0, components.DamageEvent.Get(tower).Amount)

	UpdateCombat(s)
	assert.Equal(t, cfg.Tower.Health-25, components.Health.Get(tower).Current)
	assert.False(t, tower.HasComponent(components.DamageEvent))

	UpdateCombat(s)
	assert.Equal(t, cfg.Tower.Health-25, components.Health.Get(tower).Current)
}

func TestTowerDestroyedEndsEncounter(t *testing.T) {
	s, ledger := newTestSim(t, nil)
	log := recordEvents(s)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))
	require.NoError(t, s.Waves.StartNextWave())

	assert.True(t, TakeDamage(s, tower, cfg.Tower.Health))
	assert.False(t, TakeDamage(s, tower, 10))
	events.Flush(s.World)

	assert.Equal(t, components.OutcomeDefeat, s.Outcome())
	assert.True(t, ledger.Lost)
	assert.False(t, ledger.Won)
	require.Len(t, log.finished, 1)
	assert.Equal(t, "tower destroyed", log.finished[0].Reason)

	_, standing := s.Tower()
	assert.False(t, standing)
	assert.True(t, errors.Is(s.Waves.StartNextWave(), ErrEncounterOver))

	// Spawning stopped with the encounter.
	run(s, 10)
	assert.Zero(t, s.Waves.State().ZombiesSpawned)
}

func TestDestroyedDefenseInvalidatesTarget(t *testing.T) {
	s, _ := newTestSim(t, nil)
	defense := factory.CreateDefenseAt(s.World, gamemath.V(30, 30))
	target := components.Target{Kind: components.TargetDefense, Entity: defense.Entity()}
	require.True(t, target.Valid(s.World))

	TakeDamage(s, defense, cfg.Defense.Health)
	assert.False(t, target.Valid(s.World))

	run(s, step)
	assert.False(t, s.World.Valid(defense.Entity()), "destroyed defenses are removed")
}

func TestDeadAgentsAreRemovedAfterDelay(t *testing.T) {
	s, _ := newTestSim(t, nil)
	e := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(10, 10), 1)
	entity := e.Entity()
	TakeDamage(s, e, 1000)

	run(s, cfg.Combat.DeathRemovalDelay-step)
	assert.True(t, s.World.Valid(entity))
	run(s, step)
	assert.False(t, s.World.Valid(entity))
}
