package factory

import (
	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// minFlightTime keeps point-blank shots from producing a zero-length tween.
const minFlightTime = 0.05

// CreateProjectile launches an acid glob from a source agent at a target.
// Flight time is the distance divided by the acid speed.
func CreateProjectile(w donburi.World, source donburi.Entity, from, to gamemath.Vec2, target components.Target, damage float64) *donburi.Entry {
	projectile := archetypes.Projectile.Spawn(w)

	flight := max(gamemath.Distance(from, to)/cfg.Behaviors.Acid.Speed, minFlightTime)

	components.Projectile.SetValue(projectile, components.ProjectileData{
		Source:    source,
		Target:    target,
		From:      from,
		LastKnown: to,
		Damage:    damage,
		Flight:    gween.New(0, 1, float32(flight), ease.Linear),
	})
	components.Transform.SetValue(projectile, components.TransformData{
		Position: from,
		Facing:   gamemath.Direction(from, to),
	})

	return projectile
}

// CreatePuddle leaves a damage-over-time area at pos. The radius grows in
// from zero; timers are attached by the caller.
func CreatePuddle(w donburi.World, pos gamemath.Vec2, damagePerSecond float64) *donburi.Entry {
	puddle := archetypes.Puddle.Spawn(w)

	acid := cfg.Behaviors.Acid
	components.Puddle.SetValue(puddle, components.PuddleData{
		DamagePerSecond: damagePerSecond,
		Grow:            gween.New(0, float32(acid.PuddleRadius), float32(acid.PuddleGrowTime), ease.Linear),
		LastHit:         make(map[donburi.Entity]float64),
	})
	components.Transform.SetValue(puddle, components.TransformData{Position: pos})

	return puddle
}
