package components

import (
	"github.com/automoto/holdout/shared/timer"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ProjectileData is an arcing acid glob homing on its target.
type ProjectileData struct {
	Source    donburi.Entity
	Target    Target
	From      math.Vec2
	LastKnown math.Vec2
	Damage    float64
	Flight    *gween.Tween
	Expire    timer.Handle
}

var Projectile = donburi.NewComponentType[ProjectileData]()

// PuddleData is a damage-over-time area left by an acid impact.
type PuddleData struct {
	DamagePerSecond float64
	Radius          float64
	Grow            *gween.Tween
	Tick            timer.Handle
	Expire          timer.Handle
	LastHit         map[donburi.Entity]float64
}

var Puddle = donburi.NewComponentType[PuddleData]()
