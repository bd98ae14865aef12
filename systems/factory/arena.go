package factory

import (
	"log"

	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/shared/leveldata"
	"github.com/yohamta/donburi"
)

// CreateArena builds the static entities of an arena: walls, raised ground,
// defenses, the tower and the player. The space must already exist.
func CreateArena(w donburi.World, arena *leveldata.Arena) {
	for _, b := range arena.Walls {
		CreateWall(w, b.Rect, b.Height)
	}
	for _, b := range arena.Ground {
		CreateGround(w, b.Rect, b.Height)
	}
	for _, d := range arena.Defenses {
		CreateDefense(w, d.Rect, d.Kind, d.Height, d.Health)
	}
	if arena.Tower != nil {
		CreateTower(w, *arena.Tower)
	}
	if arena.Player != nil {
		facing := gamemath.V(0, -1)
		if arena.Tower != nil {
			// Face away from the tower, towards the approaching waves
			facing = gamemath.Direction(*arena.Tower, *arena.Player)
		}
		CreatePlayer(w, *arena.Player, facing)
	}

	log.Printf("[Arena] Loaded %s: %d walls, %d defenses, %d spawn points, %.0fx%.0f",
		arena.Name, len(arena.Walls), len(arena.Defenses), len(arena.SpawnPoints), arena.Width, arena.Height)
}

// CreateSingletons spawns the wave state and encounter records.
func CreateSingletons(w donburi.World) (waveState, encounter *donburi.Entry) {
	return createWaveState(w), createEncounter(w)
}
