package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/systems/factory"
)

func TestSnapshotAgentsWithin(t *testing.T) {
	s, _ := newTestSim(t, nil)
	c := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(13, 10), 1)
	a := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(11, 10), 1)
	b := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(10, 12), 1)
	factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(30, 30), 1)
	dead := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(10, 10.5), 1)
	TakeDamage(s, dead, 1e9)

	snapshot := BuildSnapshot(s.World)
	assert.Equal(t, 4, snapshot.Agents())
	assert.Equal(t,
		[]donburi.Entity{a.Entity(), b.Entity(), c.Entity()},
		snapshot.AgentsWithin(gamemath.V(10, 10), 5),
	)
	assert.Equal(t, 2, snapshot.CountAgentsWithin(gamemath.V(10, 10), 5, a.Entity()))
	assert.Empty(t, snapshot.AgentsWithin(gamemath.V(10, 10), 0))
}

func TestSnapshotNearestDefense(t *testing.T) {
	s, _ := newTestSim(t, nil)
	snapshot := BuildSnapshot(s.World)
	_, ok := snapshot.NearestDefense(gamemath.V(0, 0), nil)
	assert.False(t, ok)

	factory.CreateDefenseAt(s.World, gamemath.V(40, 40))
	near := factory.CreateDefenseAt(s.World, gamemath.V(12, 10))
	snapshot = BuildSnapshot(s.World)
	got, ok := snapshot.NearestDefense(gamemath.V(10, 10), nil)
	assert.True(t, ok)
	assert.Equal(t, near.Entity(), got)
}

func TestSnapshotNearestDefenseRespectsAccept(t *testing.T) {
	s, _ := newTestSim(t, nil)
	near := factory.CreateDefenseAt(s.World, gamemath.V(12, 10))
	far := factory.CreateDefenseAt(s.World, gamemath.V(40, 10))
	snapshot := BuildSnapshot(s.World)

	got, ok := snapshot.NearestDefense(gamemath.V(10, 10), func(e donburi.Entity) bool { return e != near.Entity() })
	assert.True(t, ok)
	assert.Equal(t, far.Entity(), got)

	_, ok = snapshot.NearestDefense(gamemath.V(10, 10), func(donburi.Entity) bool { return false })
	assert.False(t, ok)
}

func TestSnapshotRebuiltAfterTimerKills(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(10, 10), 1)
	victim := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(12, 10), 1)
	defense := factory.CreateDefenseAt(s.World, gamemath.V(40, 40))

	s.Timers.After(step/2, func() {
		TakeDamage(s, victim, 1e9)
		TakeDamage(s, defense, cfg.Defense.Health)
	})
	s.Update(step)

	assert.Equal(t, 1, s.Snapshot().Agents())
	_, ok := s.Snapshot().NearestDefense(gamemath.V(40, 40), nil)
	assert.False(t, ok)
}
