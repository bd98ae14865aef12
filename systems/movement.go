package systems

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
)

// movementBlockers are the resolv tags an agent cannot walk through.
var movementBlockers = []string{tags.ResolvSolid, tags.ResolvDefense, tags.ResolvTower, tags.ResolvPlayer}

// UpdateMovement walks agents along their routes or toward override points.
func UpdateMovement(s *Sim) {
	dt := s.DeltaTime()
	for _, e := range s.LiveAgents() {
		agent := components.Agent.Get(e)
		override := components.MovementOverride.Get(e)

		if override.Mode == components.OverrideFixedPoint {
			if override.Driven {
				continue
			}
			speed := override.Speed
			if speed <= 0 {
				speed = agent.Speed
			}
			pos := components.Transform.Get(e).Position
			if gamemath.Distance(pos, override.Point) <= cfg.Combat.ArriveDistance {
				continue
			}
			next, _ := gamemath.MoveTowards(pos, override.Point, speed*dt)
			_, agent.Blocked = tryMove(s, e, next)
			continue
		}

		if agent.Stopped || !agent.HasDestination {
			continue
		}
		followPath(s, e, agent.Speed*dt)
	}
}

// followPath spends step distance along the agent's path corners.
func followPath(s *Sim, e *donburi.Entry, step float64) {
	agent := components.Agent.Get(e)
	for step > 0 && agent.PathIndex < len(agent.Path) {
		pos := components.Transform.Get(e).Position
		corner := agent.Path[agent.PathIndex]
		remaining := gamemath.Distance(pos, corner)

		next, arrived := gamemath.MoveTowards(pos, corner, step)
		if _, blocked := tryMove(s, e, next); blocked {
			agent.Blocked = true
			return
		}
		agent.Blocked = false
		if !arrived {
			return
		}
		step -= remaining
		agent.PathIndex++
	}
	if agent.PathIndex >= len(agent.Path) {
		agent.HasDestination = false
	}
}

// tryMove moves an agent to next unless its box would overlap a blocker.
// It returns the blocking object when the step was refused.
func tryMove(s *Sim, e *donburi.Entry, next gamemath.Vec2) (*resolv.Object, bool) {
	transform := components.Transform.Get(e)
	obj := components.Object.Get(e).Object
	delta := gamemath.Sub(next, transform.Position)
	if delta.X == 0 && delta.Y == 0 {
		return nil, false
	}

	if blocker := blockingObject(obj, delta); blocker != nil {
		return blocker, true
	}

	transform.Facing = gamemath.Normalize(delta)
	setPosition(e, next)
	return nil, false
}

// blockingObject returns the first blocker obj would overlap after moving by
// delta. resolv's Check is a cell broadphase, so candidates are confirmed
// with an exact box test.
func blockingObject(obj *resolv.Object, delta gamemath.Vec2) *resolv.Object {
	if obj == nil || obj.Space == nil {
		return nil
	}
	collision := obj.Check(delta.X, delta.Y, movementBlockers...)
	if collision == nil {
		return nil
	}
	moved := gamemath.Rect{X: obj.X + delta.X, Y: obj.Y + delta.Y, W: obj.W, H: obj.H}
	current := objectRect(obj)
	for _, other := range collision.Objects {
		r := objectRect(other)
		// Already overlapping objects never trap an agent
		if r.Intersects(moved) && !r.Intersects(current) {
			return other
		}
	}
	return nil
}

// setPosition moves an entity and its collision object together.
func setPosition(e *donburi.Entry, pos gamemath.Vec2) {
	components.Transform.Get(e).Position = pos
	if !e.HasComponent(components.Object) {
		return
	}
	obj := components.Object.Get(e).Object
	if obj == nil {
		return
	}
	obj.X = pos.X - obj.W/2
	obj.Y = pos.Y - obj.H/2
	if obj.Space != nil {
		obj.Update()
	}
}
