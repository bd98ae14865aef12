package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cfg "github.com/automoto/holdout/config"
)

func openTestStore(t *testing.T) *PlanStore {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)

	store, err := OpenPlanStore("holdout_test")
	if err != nil {
		t.Skipf("no data directory available: %v", err)
	}
	return store
}

func TestPlanStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	plan, err := store.Load("arena")
	require.NoError(t, err)
	assert.Nil(t, plan)

	autoStart := false
	saved := &cfg.WavePlan{
		AutoStart: &autoStart,
		Waves: []cfg.Wave{
			{ZombieCount: 8, SpawnRate: 2, Mode: cfg.ModeStandard},
			{ZombieCount: 12, SpawnRate: 1, Mode: cfg.ModeWaveSurvival, SubWaves: 3},
		},
	}
	require.NoError(t, store.Save("arena", saved))

	plan, err = store.Load("arena")
	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.False(t, plan.ShouldAutoStart())
	require.Len(t, plan.Waves, 2)
	assert.Equal(t, 8, plan.Waves[0].ZombieCount)
	assert.Equal(t, cfg.ModeWaveSurvival, plan.Waves[1].Mode)
	assert.Equal(t, 3, plan.Waves[1].SubWaves)

	require.NoError(t, store.Delete("arena"))
	plan, err = store.Load("arena")
	require.NoError(t, err)
	assert.Nil(t, plan)
}
