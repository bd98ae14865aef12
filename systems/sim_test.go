package systems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/shared/leveldata"
	"github.com/automoto/holdout/systems/factory"
)

// step is an exact binary fraction so accumulated time stays exact.
const step = 0.125

func newTestSim(t *testing.T, plan *cfg.WavePlan) (*Sim, *Ledger) {
	t.Helper()
	ledger := NewLedger()
	if plan == nil {
		plan = manualPlan()
	}
	s := NewSim(Options{Deps: Deps{Game: ledger}, Plan: plan})
	return s, ledger
}

// manualPlan is a one-wave plan that waits for StartNextWave.
func manualPlan(waves ...cfg.Wave) *cfg.WavePlan {
	autoStart := false
	if len(waves) == 0 {
		waves = []cfg.Wave{{ZombieCount: 5, SpawnRate: 1, Mode: cfg.ModeStandard}}
	}
	return &cfg.WavePlan{AutoStart: &autoStart, Waves: waves}
}

func run(s *Sim, seconds float64) {
	for i := 0; i < int(math.Round(seconds/step)); i++ {
		s.Update(step)
	}
}

// runUntil steps until done reports true or limit seconds have passed.
func runUntil(s *Sim, limit float64, done func() bool) bool {
	for i := 0; i < int(math.Round(limit/step)); i++ {
		s.Update(step)
		if done() {
			return true
		}
	}
	return false
}

func killAll(s *Sim) {
	for _, e := range s.LiveAgents() {
		TakeDamage(s, e, math.MaxFloat64)
	}
}

type eventLog struct {
	waveStarted []events.WaveStartedEvent
	waveEnded   []events.WaveEndedEvent
	subWaves    []events.SubWaveStartedEvent
	died        []events.AgentDiedEvent
	targets     []events.TargetChangedEvent
	rounds      []events.RoundCompletedEvent
	finished    []events.EncounterFinishedEvent
}

func recordEvents(s *Sim) *eventLog {
	l := &eventLog{}
	events.WaveStarted.Subscribe(s.World, func(_ donburi.World, ev events.WaveStartedEvent) {
		l.waveStarted = append(l.waveStarted, ev)
	})
	events.WaveEnded.Subscribe(s.World, func(_ donburi.World, ev events.WaveEndedEvent) {
		l.waveEnded = append(l.waveEnded, ev)
	})
	events.SubWaveStarted.Subscribe(s.World, func(_ donburi.World, ev events.SubWaveStartedEvent) {
		l.subWaves = append(l.subWaves, ev)
	})
	events.AgentDied.Subscribe(s.World, func(_ donburi.World, ev events.AgentDiedEvent) {
		l.died = append(l.died, ev)
	})
	events.TargetChanged.Subscribe(s.World, func(_ donburi.World, ev events.TargetChangedEvent) {
		l.targets = append(l.targets, ev)
	})
	events.RoundCompleted.Subscribe(s.World, func(_ donburi.World, ev events.RoundCompletedEvent) {
		l.rounds = append(l.rounds, ev)
	})
	events.EncounterFinished.Subscribe(s.World, func(_ donburi.World, ev events.EncounterFinishedEvent) {
		l.finished = append(l.finished, ev)
	})
	return l
}

func TestPauseFreezesSimulation(t *testing.T) {
	s, _ := newTestSim(t, nil)
	require.NoError(t, s.Waves.StartNextWave())

	run(s, 1)
	assert.Equal(t, 1.0, s.Now())

	s.Pause()
	run(s, 5)
	assert.Equal(t, 1.0, s.Now())
	assert.Equal(t, 0, s.Waves.State().ZombiesSpawned)

	s.Resume()
	run(s, 0.5)
	assert.Equal(t, 1.5, s.Now())
	assert.Equal(t, 1, s.Waves.State().ZombiesSpawned)

	s.SetTimeScale(0)
	run(s, 3)
	assert.Equal(t, 1.5, s.Now())

	s.SetTimeScale(2)
	run(s, 0.25)
	assert.Equal(t, 2.0, s.Now())
}

func TestLoadArenaBuildsEntitiesAndSpawnPoints(t *testing.T) {
	s, _ := newTestSim(t, nil)
	tower, player := gamemath.V(64, 64), gamemath.V(64, 72)
	s.LoadArena(&leveldata.Arena{
		Name:        "test",
		Width:       128,
		Height:      128,
		Walls:       []leveldata.Block{{Rect: gamemath.Rect{X: 20, Y: 0, W: 2, H: 60}, Height: 6}},
		Defenses:    []leveldata.DefenseSpawn{{Rect: gamemath.Rect{X: 60, Y: 50, W: 2, H: 1}}},
		SpawnPoints: []gamemath.Vec2{gamemath.V(5, 5), gamemath.V(120, 120)},
		Tower:       &tower,
		Player:      &player,
	})

	_, ok := s.Tower()
	assert.True(t, ok)
	p, ok := s.Player()
	require.True(t, ok)
	assert.Equal(t, gamemath.V(0, 1), components.Transform.Get(p).Facing, "player faces away from the tower")
	assert.Len(t, s.Spawns.Points(), 2)

	// The nav grid routes around the wall.
	path, found := s.Deps.Pathing.FindPath(gamemath.V(10, 10), gamemath.V(30, 10))
	require.True(t, found)
	assert.Greater(t, path.Length(), 20.0)
}

func TestAgentAttacksTowerInRange(t *testing.T) {
	s, _ := newTestSim(t, nil)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))
	components.Tower.Get(tower).AttackSpeed = 0 // keep the tower from shooting back
	zombie := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(64, 70), 1)

	hit := runUntil(s, 10, func() bool {
		return components.Health.Get(tower).Current < cfg.Tower.Health
	})
	require.True(t, hit)

	agent := components.Agent.Get(zombie)
	assert.True(t, agent.InRange)
	assert.Equal(t, cfg.Tower.Health-agent.Damage, components.Health.Get(tower).Current)
	assert.Equal(t, components.TargetTower, components.TargetState.Get(zombie).Current.Kind)
}
