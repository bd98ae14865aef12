package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/shared/leveldata"
)

func testArena() *leveldata.Arena {
	tower := gamemath.V(32, 32)
	return &leveldata.Arena{
		Name:        "test",
		Width:       64,
		Height:      64,
		Tower:       &tower,
		SpawnPoints: []gamemath.Vec2{gamemath.V(32, 8), gamemath.V(8, 32)},
	}
}

func plan(autoStart bool, waves ...cfg.Wave) *cfg.WavePlan {
	delay := 0.0
	return &cfg.WavePlan{AutoStart: &autoStart, FirstWaveDelay: &delay, Waves: waves}
}

func TestHeadlessEncounterReachesVictory(t *testing.T) {
	s := NewServer(Config{
		Arena:    testArena(),
		Plan:     plan(true, cfg.Wave{ZombieCount: 2, SpawnRate: 1}),
		Seed:     1,
		Duration: 120,
	})

	outcome := s.Run()
	assert.Equal(t, components.OutcomeVictory, outcome)
	assert.True(t, s.Ledger().Won)
	assert.Equal(t, 2*cfg.Zombies[cfg.Shambler].Gold, s.Ledger().Gold)
	assert.Less(t, s.Sim().Now(), 120.0)

	select {
	case <-s.Done():
	default:
		t.Fatal("loop did not report completion")
	}
}

func TestHeadlessRunStopsAtDuration(t *testing.T) {
	s := NewServer(Config{
		Arena:    testArena(),
		Plan:     plan(false, cfg.Wave{ZombieCount: 2, SpawnRate: 1}),
		TickRate: 20,
		Duration: 2,
	})

	outcome := s.Run()
	assert.Equal(t, components.OutcomeInProgress, outcome)
	assert.InDelta(t, 2, s.Sim().Now(), 0.1)
}

func TestRealtimeLoopStops(t *testing.T) {
	s := NewServer(Config{Plan: plan(false, cfg.Wave{ZombieCount: 1, SpawnRate: 1}), TickRate: 100})
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.Stop()
	s.Stop()

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoadBundledArenas(t *testing.T) {
	arena, err := LoadArenaFile("../../assets/levels/courtyard.tmx")
	require.NoError(t, err)
	assert.Equal(t, "courtyard", arena.Name)

	arenas, names, err := LoadAllArenas("../../assets")
	require.NoError(t, err)
	assert.Contains(t, names, "courtyard")
	assert.NotNil(t, arenas["courtyard"])

	_, err = LoadArenaFile("../../assets/levels/missing.tmx")
	assert.Error(t, err)
}
