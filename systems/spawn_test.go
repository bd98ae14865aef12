package systems

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

func TestAllocatorSkipsPointsNearDefender(t *testing.T) {
	near, far := gamemath.V(10, 10), gamemath.V(60, 60)
	a := NewSpawnPointAllocator([]gamemath.Vec2{near, far}, 15, rand.New(rand.NewSource(3)))

	defender := gamemath.V(12, 12)
	for i := 0; i < 20; i++ {
		assert.Equal(t, far, a.Allocate(&defender))
	}
}

func TestAllocatorFallsBackWhenEverythingIsClose(t *testing.T) {
	points := []gamemath.Vec2{gamemath.V(10, 10), gamemath.V(11, 11)}
	a := NewSpawnPointAllocator(points, 15, rand.New(rand.NewSource(3)))

	defender := gamemath.V(10, 11)
	for i := 0; i < 10; i++ {
		assert.Contains(t, points, a.Allocate(&defender))
	}
}

func TestAllocatorWithoutDefenderUsesAnyPoint(t *testing.T) {
	points := []gamemath.Vec2{gamemath.V(1, 1), gamemath.V(2, 2), gamemath.V(3, 3)}
	a := NewSpawnPointAllocator(points, 15, rand.New(rand.NewSource(3)))

	seen := map[gamemath.Vec2]bool{}
	for i := 0; i < 100; i++ {
		seen[a.Allocate(nil)] = true
	}
	assert.Len(t, seen, 3)
}

func TestAllocatorDefaultRing(t *testing.T) {
	a := NewSpawnPointAllocator(nil, 15, rand.New(rand.NewSource(3)))

	defender := gamemath.V(50, 50)
	for i := 0; i < 10; i++ {
		p := a.Allocate(&defender)
		assert.InDelta(t, cfg.Spawning.DefaultRingRadius, gamemath.Distance(p, defender), 1e-9)
	}
	p := a.Allocate(nil)
	assert.InDelta(t, cfg.Spawning.DefaultRingRadius, gamemath.Distance(p, gamemath.Vec2{}), 1e-9)
}

func TestAllocatorPointsAreCopied(t *testing.T) {
	points := []gamemath.Vec2{gamemath.V(1, 1)}
	a := NewSpawnPointAllocator(points, 0, nil)
	points[0] = gamemath.V(9, 9)
	assert.Equal(t, []gamemath.Vec2{gamemath.V(1, 1)}, a.Points())

	a.SetPoints([]gamemath.Vec2{gamemath.V(5, 5)})
	assert.Equal(t, gamemath.V(5, 5), a.Allocate(nil))
}
