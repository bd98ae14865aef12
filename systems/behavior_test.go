package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/systems/factory"
)

func count[T any](s *Sim, c *donburi.ComponentType[T]) int {
	n := 0
	c.Each(s.World, func(*donburi.Entry) { n++ })
	return n
}

func TestChargerHitsPlayer(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateTower(s.World, gamemath.V(100, 100))
	player := factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	bruiser := factory.CreateZombie(s.World, cfg.Bruiser, gamemath.V(40, 50), 1)
	charger := components.Charger.Get(bruiser)

	run(s, step)
	require.True(t, charger.Charging)
	assert.Equal(t, components.OverrideFixedPoint, components.MovementOverride.Get(bruiser).Mode)

	hit := runUntil(s, 2, func() bool { return charger.Hits > 0 })
	require.True(t, hit, "charge connects within its duration")

	damage := components.Agent.Get(bruiser).Damage * cfg.Behaviors.Charger.DamageMultiplier
	assert.Equal(t, cfg.Player.Health-damage, components.Health.Get(player).Current)
	assert.False(t, charger.Charging)
	assert.Equal(t, components.OverrideNone, components.MovementOverride.Get(bruiser).Mode)
	assert.Equal(t, s.Now()+cfg.Behaviors.Charger.Cooldown, charger.NextChargeAt)
	assert.Equal(t, 1, charger.Charges)
}

func TestChargerNeedsLineOfSight(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	factory.CreateWall(s.World, gamemath.Rect{X: 45, Y: 40, W: 1, H: 20}, 0)
	bruiser := factory.CreateZombie(s.World, cfg.Bruiser, gamemath.V(40, 50), 1)

	run(s, step)
	assert.Equal(t, components.TargetPlayer, components.TargetState.Get(bruiser).Current.Kind)
	assert.Zero(t, components.Charger.Get(bruiser).Charges)
}

func TestChargerIgnoresTargetsInAttackRange(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	bruiser := factory.CreateZombie(s.World, cfg.Bruiser, gamemath.V(48.6, 50), 1)

	run(s, step)
	assert.Zero(t, components.Charger.Get(bruiser).Charges)
}

func TestChargeReleasedOnDeath(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	bruiser := factory.CreateZombie(s.World, cfg.Bruiser, gamemath.V(40, 50), 1)
	run(s, step)
	require.True(t, components.Charger.Get(bruiser).Charging)

	TakeDamage(s, bruiser, 1e9)
	run(s, step)
	assert.False(t, components.Charger.Get(bruiser).Charging)
	assert.False(t, components.MovementOverride.Get(bruiser).Active())
}

func sneakerArena(t *testing.T) (*Sim, *donburi.Entry, *donburi.Entry) {
	s, _ := newTestSim(t, nil)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))
	player := factory.CreatePlayer(s.World, gamemath.V(64, 100), gamemath.V(0, 1))
	return s, tower, player
}

func TestSneakerRules(t *testing.T) {
	tests := []struct {
		name string
		pos  gamemath.Vec2
		want components.TargetKind
	}{
		{"close to the tower", gamemath.V(64, 70), components.TargetTower},
		{"far from the player", gamemath.V(10, 10), components.TargetTower},
		{"behind the player", gamemath.V(64, 90), components.TargetPlayer},
		{"player much closer", gamemath.V(64, 108), components.TargetPlayer},
		{"undecided", gamemath.V(84, 92), components.TargetNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := sneakerArena(t)
			e := factory.CreateZombie(s.World, cfg.Sneaker, tt.pos, 1)

			sneakerPreTargeting(s, e)
			assert.Equal(t, tt.want, components.TargetState.Get(e).Forced.Kind)
			if tt.want != components.TargetNone {
				assert.Equal(t, tt.want, components.TargetState.Get(e).Current.Kind)
				assert.Equal(t, components.OverrideForcedTarget, components.MovementOverride.Get(e).Mode)
			}
		})
	}
}

func TestSneakerReleasesForcedTarget(t *testing.T) {
	s, _, _ := sneakerArena(t)
	e := factory.CreateZombie(s.World, cfg.Sneaker, gamemath.V(64, 70), 1)

	sneakerPreTargeting(s, e)
	require.Equal(t, components.TargetTower, components.TargetState.Get(e).Forced.Kind)

	setPosition(e, gamemath.V(84, 92))
	sneakerPreTargeting(s, e)
	assert.True(t, components.TargetState.Get(e).Forced.IsNone())
	assert.Equal(t, components.OverrideNone, components.MovementOverride.Get(e).Mode)
	assert.Equal(t, components.TargetNone, components.Sneaker.Get(e).LastForced)
}

func TestSneakerDefersWithoutPlayer(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateTower(s.World, gamemath.V(64, 64))
	e := factory.CreateZombie(s.World, cfg.Sneaker, gamemath.V(64, 70), 1)

	sneakerPreTargeting(s, e)
	assert.True(t, components.TargetState.Get(e).Forced.IsNone())
}

func TestSneakerForcedTargetSurvivesTargeting(t *testing.T) {
	s, _, player := sneakerArena(t)
	e := factory.CreateZombie(s.World, cfg.Sneaker, gamemath.V(64, 90), 1)

	run(s, step)
	ts := components.TargetState.Get(e)
	assert.Equal(t, player.Entity(), ts.Current.Entity)
	assert.Equal(t, player.Entity(), ts.Forced.Entity)
}

func TestSpitterFiresAcid(t *testing.T) {
	s, _ := newTestSim(t, nil)
	player := factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	e := factory.CreateZombie(s.World, cfg.Spitter, gamemath.V(50, 38), 1)
	spitter := components.Spitter.Get(e)

	run(s, step)
	assert.Equal(t, 1, spitter.Spits)
	assert.Equal(t, 1, count(s, components.Projectile))
	assert.False(t, spitter.BackingOff)

	landed := runUntil(s, 3, func() bool { return count(s, components.Puddle) > 0 })
	require.True(t, landed)
	assert.Zero(t, count(s, components.Projectile))

	damage := components.Agent.Get(e).Damage
	assert.Equal(t, cfg.Player.Health-damage, components.Health.Get(player).Current, "splash damage on impact")

	run(s, 1)
	assert.Less(t, components.Health.Get(player).Current, cfg.Player.Health-damage, "the puddle keeps burning")
	assert.True(t, spitter.Holding, "holds inside the preferred distance")
}

func TestSpitterBacksOffWhenAlone(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	e := factory.CreateZombie(s.World, cfg.Spitter, gamemath.V(50, 45), 1)
	spitter := components.Spitter.Get(e)

	run(s, step)
	require.True(t, spitter.BackingOff)
	override := components.MovementOverride.Get(e)
	assert.Equal(t, components.OverrideFixedPoint, override.Mode)
	assert.Equal(t, gamemath.V(50, 45-cfg.Behaviors.Spitter.BackoffDistance), override.Point)
	assert.Zero(t, spitter.Spits)

	released := runUntil(s, 4, func() bool { return !spitter.BackingOff })
	require.True(t, released)
	assert.Less(t, components.Transform.Get(e).Position.Y, 42.0)
}

func TestSpitterHoldsWithCompany(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreatePlayer(s.World, gamemath.V(50, 50), gamemath.V(0, 1))
	e := factory.CreateZombie(s.World, cfg.Spitter, gamemath.V(50, 45), 1)
	factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(44, 45), 1)
	factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(56, 45), 1)
	spitter := components.Spitter.Get(e)

	run(s, step)
	assert.False(t, spitter.BackingOff)
	assert.Equal(t, 1, spitter.Spits)
	assert.True(t, spitter.Holding)
	override := components.MovementOverride.Get(e)
	assert.Equal(t, components.OverrideFixedPoint, override.Mode)
	assert.Equal(t, gamemath.V(50, 45), override.Point)
}

func TestLeaperJumpsLowDefense(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateTower(s.World, gamemath.V(60, 50))
	factory.CreateDefense(s.World, gamemath.Rect{X: 21.5, Y: 49, W: 1, H: 2}, "barricade", 1.5, 0)
	factory.CreateGround(s.World, gamemath.Rect{X: 24, Y: 48, W: 3, H: 4}, 1.5)
	e := factory.CreateZombie(s.World, cfg.Jumper, gamemath.V(20, 50), 1)
	leaper := components.Leaper.Get(e)

	run(s, step)
	require.True(t, leaper.Jumping)
	assert.Equal(t, gamemath.V(25, 50), leaper.To)
	assert.Equal(t, 1.5, leaper.ToHeight)

	run(s, 0.5)
	transform := components.Transform.Get(e)
	assert.InDelta(t, 22.5, transform.Position.X, 1e-9)
	assert.Greater(t, transform.Height, cfg.Behaviors.Leaper.JumpHeight, "apex clears the defense")

	landed := runUntil(s, 1, func() bool { return leaper.Jumps > 0 })
	require.True(t, landed)
	assert.False(t, leaper.Jumping)
	assert.InDelta(t, 25, transform.Position.X, 0.5)
	assert.Equal(t, 1.5, transform.Height)
	assert.Equal(t, components.OverrideNone, components.MovementOverride.Get(e).Mode)
	assert.Equal(t, s.Now()+cfg.Behaviors.Leaper.Cooldown, leaper.NextJumpAt)
}

func TestLeaperStaysBehindTallWall(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateTower(s.World, gamemath.V(60, 50))
	factory.CreateWall(s.World, gamemath.Rect{X: 21.5, Y: 45, W: 1, H: 10}, 10)
	e := factory.CreateZombie(s.World, cfg.Jumper, gamemath.V(20, 50), 1)

	run(s, 0.5)
	assert.False(t, components.Leaper.Get(e).Jumping)
	assert.Zero(t, components.Leaper.Get(e).Jumps)
}

func TestLeaperSkipsBlockedLanding(t *testing.T) {
	s, _ := newTestSim(t, nil)
	factory.CreateTower(s.World, gamemath.V(60, 50))
	factory.CreateDefense(s.World, gamemath.Rect{X: 21.5, Y: 49, W: 1, H: 2}, "barricade", 1.5, 0)
	factory.CreateWall(s.World, gamemath.Rect{X: 24.5, Y: 45, W: 1, H: 10}, 10)
	e := factory.CreateZombie(s.World, cfg.Jumper, gamemath.V(20, 50), 1)

	run(s, step)
	assert.False(t, components.Leaper.Get(e).Jumping)
}
