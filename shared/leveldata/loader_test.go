package leveldata

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/automoto/holdout/shared/gamemath"
)

func TestLoadArena(t *testing.T) {
	arena, err := LoadArena(os.DirFS("testdata"), "arena.tmx")
	require.NoError(t, err)

	assert.Equal(t, "arena", arena.Name)
	assert.Equal(t, 64.0, arena.Width)
	assert.Equal(t, 48.0, arena.Height)

	require.Len(t, arena.Walls, 1)
	assert.Equal(t, gamemath.Rect{X: 10, Y: 0, W: 1, H: 20}, arena.Walls[0].Rect)
	assert.Equal(t, 6.0, arena.Walls[0].Height)

	require.Len(t, arena.Ground, 1)
	assert.Equal(t, 1.5, arena.Ground[0].Height)

	require.Len(t, arena.Defenses, 2)
	assert.Equal(t, "barricade", arena.Defenses[0].Kind)
	assert.Equal(t, gamemath.Rect{X: 24, Y: 22, W: 2, H: 1}, arena.Defenses[0].Rect)
	assert.Equal(t, 1.5, arena.Defenses[0].Height)
	assert.Equal(t, "wall", arena.Defenses[1].Kind)
	assert.Equal(t, 400.0, arena.Defenses[1].Health)

	// Sorted by spawnIndex
	require.Len(t, arena.SpawnPoints, 2)
	assert.Equal(t, gamemath.V(60, 2), arena.SpawnPoints[0])
	assert.Equal(t, gamemath.V(2, 2), arena.SpawnPoints[1])

	require.NotNil(t, arena.Tower)
	assert.Equal(t, gamemath.V(32, 22), *arena.Tower)
	require.NotNil(t, arena.Player)
	assert.Equal(t, gamemath.V(32, 28), *arena.Player)
}

func TestLoadArenaMissingFile(t *testing.T) {
	_, err := LoadArena(os.DirFS("testdata"), "missing.tmx")
	assert.Error(t, err)
}

func TestLoadAllArenas(t *testing.T) {
	arenas, names, err := LoadAllArenas(os.DirFS("."), "testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{"arena"}, names)
	assert.Contains(t, arenas, "arena")
}
