package systems

import (
	"log"
	"math/rand"
	"slices"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// SpawnPointAllocator picks where the next agent enters the arena. Points
// too close to the defender are skipped when any other point is available.
type SpawnPointAllocator struct {
	points      []gamemath.Vec2
	minDistance float64
	rng         *rand.Rand
	warned      bool
}

func NewSpawnPointAllocator(points []gamemath.Vec2, minDistance float64, rng *rand.Rand) *SpawnPointAllocator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &SpawnPointAllocator{
		points:      slices.Clone(points),
		minDistance: minDistance,
		rng:         rng,
	}
}

// Points returns a copy of the configured spawn points.
func (a *SpawnPointAllocator) Points() []gamemath.Vec2 {
	return slices.Clone(a.points)
}

// SetPoints replaces the configured spawn points.
func (a *SpawnPointAllocator) SetPoints(points []gamemath.Vec2) {
	a.points = slices.Clone(points)
}

// Allocate returns a spawn position at least minDistance from defender when
// one exists, otherwise any position. With no configured points a default
// ring around the defender is used.
func (a *SpawnPointAllocator) Allocate(defender *gamemath.Vec2) gamemath.Vec2 {
	points := a.points
	if len(points) == 0 {
		center := gamemath.Vec2{}
		if defender != nil {
			center = *defender
		}
		if !a.warned {
			log.Printf("[Spawn] %v: no spawn points, using a default ring around %.1f,%.1f", cfg.ErrConfigurationMissing, center.X, center.Y)
			a.warned = true
		}
		points = DefaultRing(center, cfg.Spawning.DefaultRingPoints, cfg.Spawning.DefaultRingRadius)
	}

	candidates := points
	if defender != nil {
		var far []gamemath.Vec2
		for _, p := range points {
			if gamemath.Distance(p, *defender) >= a.minDistance {
				far = append(far, p)
			}
		}
		if len(far) > 0 {
			candidates = far
		}
	}
	return candidates[a.rng.Intn(len(candidates))]
}

// DefaultRing returns count points evenly spaced on a circle of radius
// around center.
func DefaultRing(center gamemath.Vec2, count int, radius float64) []gamemath.Vec2 {
	return gamemath.RingPoints(center, count, radius)
}
