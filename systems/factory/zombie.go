package factory

import (
	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
	"github.com/yohamta/donburi"
)

// behaviorComponent returns the payload component carried by a behavior kind.
func behaviorComponent(kind cfg.BehaviorKind) donburi.IComponentType {
	switch kind {
	case cfg.BehaviorCharger:
		return components.Charger
	case cfg.BehaviorLeaper:
		return components.Leaper
	case cfg.BehaviorSneaker:
		return components.Sneaker
	case cfg.BehaviorSpitter:
		return components.Spitter
	}
	return nil
}

// CreateZombie spawns an agent of the given archetype at pos. Health and
// damage are scaled for the wave it belongs to.
func CreateZombie(w donburi.World, archetype cfg.Archetype, pos gamemath.Vec2, wave int) *donburi.Entry {
	stats, exists := cfg.Zombies[archetype]
	if !exists {
		archetype = cfg.Shambler
		stats = cfg.Zombies[archetype] // Fallback to default
	}

	var extra []donburi.IComponentType
	if c := behaviorComponent(stats.Behavior); c != nil {
		extra = append(extra, c)
	}
	zombie := archetypes.Zombie.Spawn(w, extra...)

	obj := newBox(pos.X, pos.Y, stats.CollisionSize, stats.CollisionSize, tags.ResolvZombie)
	addObject(w, zombie, obj)

	health := gamemath.ScaleForWave(stats.Health, cfg.Combat.HealthScalePerWave, wave)
	damage := gamemath.ScaleForWave(stats.Damage, cfg.Combat.DamageScalePerWave, wave)

	components.Agent.SetValue(zombie, components.AgentData{
		Archetype:   archetype,
		Behavior:    stats.Behavior,
		Wave:        wave,
		State:       components.StateSeeking,
		Damage:      damage,
		AttackRange: stats.AttackRange,
		AttackRate:  stats.AttackRate,
		AggroRange:  stats.AggroRange,
		WalkSpeed:   stats.WalkSpeed,
		RunSpeed:    stats.WalkSpeed * cfg.Combat.RunSpeedMultiplier,
		Speed:       stats.WalkSpeed,
		Gold:        stats.Gold,
		Experience:  stats.Experience,
	})
	components.Health.SetValue(zombie, components.HealthData{Current: health, Max: health})
	components.Transform.SetValue(zombie, components.TransformData{Position: pos})

	return zombie
}
