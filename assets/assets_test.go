package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledArena(t *testing.T) {
	arena, err := LoadArena("courtyard")
	require.NoError(t, err)

	assert.Equal(t, 64.0, arena.Width)
	assert.Equal(t, 64.0, arena.Height)
	require.NotNil(t, arena.Tower)
	assert.Equal(t, 32.0, arena.Tower.X)
	assert.Len(t, arena.SpawnPoints, 5)
	assert.Len(t, arena.Defenses, 4)
	assert.Len(t, arena.Walls, 3)

	_, names, err := LoadAllArenas()
	require.NoError(t, err)
	assert.Contains(t, names, "courtyard")
}

func TestBundledPlans(t *testing.T) {
	names, err := PlanNames()
	require.NoError(t, err)
	require.Contains(t, names, "default")

	for _, name := range names {
		plan, err := LoadPlan(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, plan.Waves, name)
	}

	_, err = LoadPlan("missing")
	assert.Error(t, err)
}
