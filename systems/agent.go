package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/pathing"
	"github.com/automoto/holdout/shared/gamemath"
)

// UpdateAgents runs the periodic range check and starts attacks for agents
// that are in range and off cooldown.
func UpdateAgents(s *Sim) {
	now := s.Now()
	for _, e := range s.LiveAgents() {
		agent := components.Agent.Get(e)
		if now >= agent.NextRangeCheckAt {
			agent.NextRangeCheckAt = now + cfg.Targeting.RangeCheckInterval
			checkRange(s, e)
		}
		if agent.State == components.StateInRange && now >= agent.NextAttackAt &&
			components.MovementOverride.Get(e).Mode != components.OverrideFixedPoint {
			startAttack(s, e)
		}
	}
}

// checkRange moves an agent between Seeking and InRange. Attacking agents
// keep their state until the windup resolves.
func checkRange(s *Sim, e *donburi.Entry) {
	agent := components.Agent.Get(e)
	target := components.TargetState.Get(e).Current
	pos := components.Transform.Get(e).Position

	dist, ok := targetDistance(s, pos, target)
	agent.InRange = ok && dist <= agent.AttackRange
	if !ok && !target.IsNone() {
		// Target died or was removed; pick a new one on the next pass
		agent.NextTargetAt = min(agent.NextTargetAt, s.Now())
	}

	if agent.State == components.StateAttacking {
		return
	}
	if agent.InRange {
		agent.State = components.StateInRange
		agent.Stopped = true
		if p, ok := targetPoint(s, target); ok {
			components.Transform.Get(e).Facing = gamemath.Direction(pos, p)
		}
		return
	}

	agent.State = components.StateSeeking
	if agent.Stopped {
		agent.Stopped = false
		refreshDestination(s, e, nil)
	}
}

// startAttack enters Attacking and schedules damage after the windup.
func startAttack(s *Sim, e *donburi.Entry) {
	agent := components.Agent.Get(e)
	target := components.TargetState.Get(e).Current
	if !target.Valid(s.World) {
		agent.State = components.StateSeeking
		return
	}

	agent.State = components.StateAttacking
	agent.NextAttackAt = s.Now() + 1/agent.AttackRate

	entity := e.Entity()
	agent.PendingAttack = s.Timers.After(cfg.Combat.AttackWindup, func() {
		resolveAttack(s, entity, target)
	})
}

// resolveAttack applies melee damage once the windup elapsed, provided the
// attacker and its target both survived it.
func resolveAttack(s *Sim, attacker donburi.Entity, target components.Target) {
	if !s.World.Valid(attacker) {
		return
	}
	e := s.World.Entry(attacker)
	agent := components.Agent.Get(e)
	if !agent.Alive() {
		return
	}
	agent.PendingAttack = 0
	agent.State = components.StateInRange

	if target.Valid(s.World) {
		TakeDamage(s, s.World.Entry(target.Entity), agent.Damage)
	}
}

// SetMovementOverride seizes an agent's movement and sends it to point.
// speed 0 keeps the agent's current speed.
func SetMovementOverride(e *donburi.Entry, point gamemath.Vec2, speed float64) {
	override := components.MovementOverride.Get(e)
	override.Mode = components.OverrideFixedPoint
	override.Point = point
	override.Speed = speed
	override.Driven = false
}

// DriveMovement seizes an agent's movement for a behavior that positions
// the agent itself.
func DriveMovement(e *donburi.Entry, point gamemath.Vec2) {
	SetMovementOverride(e, point, 0)
	components.MovementOverride.Get(e).Driven = true
}

// SetOverrideMovement holds the agent where it stands while hold is true.
func SetOverrideMovement(s *Sim, e *donburi.Entry, hold bool) {
	if hold {
		SetMovementOverride(e, components.Transform.Get(e).Position, 0)
		return
	}
	ClearMovementOverride(s, e)
}

// ClearMovementOverride hands movement back to targeting and restores the
// route to the current target.
func ClearMovementOverride(s *Sim, e *donburi.Entry) {
	override := components.MovementOverride.Get(e)
	forced := !components.TargetState.Get(e).Forced.IsNone()
	*override = components.MovementOverrideData{}
	if forced {
		override.Mode = components.OverrideForcedTarget
	}
	if components.Agent.Get(e).Alive() {
		refreshDestination(s, e, nil)
	}
}

// OverrideArrived reports whether a fixed-point override has been reached.
func OverrideArrived(e *donburi.Entry) bool {
	override := components.MovementOverride.Get(e)
	if override.Mode != components.OverrideFixedPoint {
		return false
	}
	pos := components.Transform.Get(e).Position
	return gamemath.Distance(pos, override.Point) <= cfg.Combat.ArriveDistance
}

// refreshDestination routes an agent to its current target. A fixed-point
// override suppresses the update. path, when given, is reused.
func refreshDestination(s *Sim, e *donburi.Entry, path pathing.Polyline) {
	if components.MovementOverride.Get(e).Mode == components.OverrideFixedPoint {
		return
	}
	agent := components.Agent.Get(e)
	pos := components.Transform.Get(e).Position

	dest, ok := targetPoint(s, components.TargetState.Get(e).Current)
	if !ok {
		agent.Path = nil
		agent.PathIndex = 0
		agent.HasDestination = false
		return
	}

	if len(path) == 0 {
		found := false
		path, found = s.Deps.Pathing.FindPath(pos, dest)
		if !found || len(path) == 0 {
			path = pathing.Polyline{pos, dest}
		}
	}

	agent.Destination = dest
	agent.HasDestination = true
	agent.Path = path
	agent.PathIndex = 1
	agent.Blocked = false
}
