package archetypes

import (
	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/tags"
	"github.com/yohamta/donburi"
)

var (
	Zombie = newArchetype(
		tags.Zombie,
		components.Agent,
		components.Object,
		components.Health,
		components.Transform,
		components.TargetState,
		components.MovementOverride,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Object,
		components.Health,
		components.Transform,
	)
	Tower = newArchetype(
		tags.Tower,
		components.Tower,
		components.Object,
		components.Health,
		components.Transform,
		components.Obstacle,
	)
	Defense = newArchetype(
		tags.Defense,
		components.Defense,
		components.Object,
		components.Health,
		components.Transform,
		components.Obstacle,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
		components.Obstacle,
	)
	Ground = newArchetype(
		tags.Ground,
		components.Object,
		components.Obstacle,
	)
	Projectile = newArchetype(
		tags.Projectile,
		components.Projectile,
		components.Transform,
	)
	Puddle = newArchetype(
		tags.Puddle,
		components.Puddle,
		components.Transform,
	)
	Space = newArchetype(
		components.Space,
	)
	WaveState = newArchetype(
		components.WaveState,
	)
	Encounter = newArchetype(
		components.Encounter,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus any extras.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
