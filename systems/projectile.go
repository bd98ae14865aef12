package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/systems/factory"
	"github.com/automoto/holdout/tags"
)

// launchProjectile creates an acid glob and caps its lifetime.
func launchProjectile(s *Sim, source donburi.Entity, from, to gamemath.Vec2, target components.Target, damage float64) *donburi.Entry {
	e := factory.CreateProjectile(s.World, source, from, to, target, damage)
	entity := e.Entity()
	components.Projectile.Get(e).Expire = s.Timers.After(cfg.Behaviors.Acid.Lifetime, func() {
		if s.World.Valid(entity) {
			s.World.Remove(entity)
		}
	})
	return e
}

// UpdateProjectiles flies acid globs toward their targets and resolves
// impacts. A glob whose target died lands at the last known position.
func UpdateProjectiles(s *Sim) {
	dt := float32(s.DeltaTime())
	acid := cfg.Behaviors.Acid

	var landed []*donburi.Entry
	for e := range components.Projectile.Iter(s.World) {
		p := components.Projectile.Get(e)
		if pos, ok := targetPoint(s, p.Target); ok {
			p.LastKnown = pos
		}

		progress, done := p.Flight.Update(dt)
		transform := components.Transform.Get(e)
		transform.Position, transform.Height = gamemath.ArcPoint(p.From, p.LastKnown, 0, 0, acid.ArcHeight, float64(progress))
		if done {
			landed = append(landed, e)
		}
	}

	for _, e := range landed {
		impact(s, e)
	}
}

func impact(s *Sim, e *donburi.Entry) {
	p := components.Projectile.Get(e)
	acid := cfg.Behaviors.Acid

	for _, hit := range structuresWithin(s, p.LastKnown, acid.SplashRadius) {
		QueueDamage(hit, p.Damage, p.Source)
	}
	spawnPuddle(s, p.LastKnown, p.Damage*acid.PuddleDamageRatio)

	s.Timers.Cancel(p.Expire)
	s.World.Remove(e.Entity())
}

// structuresWithin returns the standing player, tower and defenses within
// radius of p. Structures are measured to their collision box.
func structuresWithin(s *Sim, p gamemath.Vec2, radius float64) []*donburi.Entry {
	var out []*donburi.Entry
	if player, ok := s.Player(); ok {
		if gamemath.Distance(p, components.Transform.Get(player).Position) <= radius {
			out = append(out, player)
		}
	}
	if tower, ok := s.Tower(); ok {
		if objectRect(components.Object.Get(tower).Object).DistanceTo(p) <= radius {
			out = append(out, tower)
		}
	}

	var defenses []*donburi.Entry
	tags.Defense.Each(s.World, func(e *donburi.Entry) {
		if e.HasComponent(components.Death) {
			return
		}
		if objectRect(components.Object.Get(e).Object).DistanceTo(p) <= radius {
			defenses = append(defenses, e)
		}
	})
	sortByEntity(defenses, (*donburi.Entry).Entity)
	return append(out, defenses...)
}

// spawnPuddle leaves acid at pos that ticks damage until it dries up.
func spawnPuddle(s *Sim, pos gamemath.Vec2, damagePerSecond float64) {
	acid := cfg.Behaviors.Acid
	e := factory.CreatePuddle(s.World, pos, damagePerSecond)
	entity := e.Entity()

	puddle := components.Puddle.Get(e)
	puddle.Tick = s.Timers.Every(acid.PuddleTickInterval, func() {
		if s.World.Valid(entity) {
			puddleTick(s, s.World.Entry(entity))
		}
	})
	puddle.Expire = s.Timers.After(acid.PuddleDuration, func() {
		if !s.World.Valid(entity) {
			return
		}
		s.Timers.Cancel(components.Puddle.Get(s.World.Entry(entity)).Tick)
		s.World.Remove(entity)
	})
}

// UpdatePuddles grows fresh puddles to full size.
func UpdatePuddles(s *Sim) {
	dt := float32(s.DeltaTime())
	for e := range components.Puddle.Iter(s.World) {
		puddle := components.Puddle.Get(e)
		if puddle.Grow == nil {
			continue
		}
		radius, done := puddle.Grow.Update(dt)
		puddle.Radius = float64(radius)
		if done {
			puddle.Radius = cfg.Behaviors.Acid.PuddleRadius
			puddle.Grow = nil
		}
	}
}

// hitSlack absorbs float drift between repeating timer deadlines.
const hitSlack = 1e-6

// puddleTick damages everything standing in the puddle. Each entity is hit
// at most once per tick interval.
func puddleTick(s *Sim, e *donburi.Entry) {
	puddle := components.Puddle.Get(e)
	if puddle.Radius <= 0 {
		return
	}
	interval := cfg.Behaviors.Acid.PuddleTickInterval
	pos := components.Transform.Get(e).Position
	now := s.Now()
	amount := puddle.DamagePerSecond * interval

	victims := structuresWithin(s, pos, puddle.Radius)
	if snapshot := s.Snapshot(); snapshot != nil {
		for _, entity := range snapshot.AgentsWithin(pos, puddle.Radius) {
			if s.World.Valid(entity) {
				victims = append(victims, s.World.Entry(entity))
			}
		}
	}

	for _, victim := range victims {
		entity := victim.Entity()
		if last, ok := puddle.LastHit[entity]; ok && now-last < interval-hitSlack {
			continue
		}
		puddle.LastHit[entity] = now
		QueueDamage(victim, amount, e.Entity())
	}
}
