package systems

import (
	"log"

	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
)

// chargeSightTags are the objects a charge line of sight can stop on.
var chargeSightTags = []string{tags.ResolvSolid, tags.ResolvDefense, tags.ResolvTower, tags.ResolvPlayer}

// chargerTargetUpdated starts a charge when the target is in detection
// range, outside attack range and the first thing along the charge ray.
func chargerTargetUpdated(s *Sim, e *donburi.Entry) {
	charger := components.Charger.Get(e)
	conf := cfg.Behaviors.Charger
	if charger.Charging || s.Now() < charger.NextChargeAt {
		return
	}

	agent := components.Agent.Get(e)
	target := components.TargetState.Get(e).Current
	targetPos, ok := targetPoint(s, target)
	if !ok {
		return
	}
	pos := components.Transform.Get(e).Position
	dist := gamemath.Distance(pos, targetPos)
	if dist <= agent.AttackRange || dist > conf.DetectionRange {
		return
	}

	self := components.Object.Get(e).Object
	hit, _, ok := castRay(s.Space, self, pos, rayEnd(pos, targetPos, conf.ChargeDistance), chargeSightTags...)
	if !ok || hit.Entity != target.Entity {
		return
	}

	charger.Charging = true
	charger.Target = target
	charger.Point = targetPos
	charger.EndsAt = s.Now() + conf.ChargeDuration
	charger.Charges++
	DriveMovement(e, targetPos)

	if cfg.Debug.LogTargeting {
		log.Printf("[Charger] Agent %v charging %s at %.1f", e.Entity(), target.Kind, dist)
	}
}

// chargerTick moves a charging agent and ends the charge on a hit, a
// collision, arrival or timeout.
func chargerTick(s *Sim, e *donburi.Entry) {
	charger := components.Charger.Get(e)
	if !charger.Charging {
		return
	}
	conf := cfg.Behaviors.Charger
	agent := components.Agent.Get(e)

	if s.Now() >= charger.EndsAt {
		endCharge(s, e)
		return
	}

	pos := components.Transform.Get(e).Position
	if dist, ok := targetDistance(s, pos, charger.Target); ok && dist <= conf.HitRadius {
		chargeHit(s, e, agent)
		return
	}

	next, arrived := gamemath.MoveTowards(pos, charger.Point, conf.ChargeSpeed*s.DeltaTime())
	if blocker, blocked := tryMove(s, e, next); blocked {
		if entity, ok := objectEntity(blocker); ok && entity == charger.Target.Entity && charger.Target.Valid(s.World) {
			chargeHit(s, e, agent)
			return
		}
		endCharge(s, e)
		return
	}
	if arrived {
		endCharge(s, e)
	}
}

func chargeHit(s *Sim, e *donburi.Entry, agent *components.AgentData) {
	charger := components.Charger.Get(e)
	if charger.Target.Valid(s.World) {
		TakeDamage(s, s.World.Entry(charger.Target.Entity), agent.Damage*cfg.Behaviors.Charger.DamageMultiplier)
		charger.Hits++
	}
	// The hit may have ended the encounter or the agent
	if components.Agent.Get(e).Alive() {
		endCharge(s, e)
	}
}

func endCharge(s *Sim, e *donburi.Entry) {
	charger := components.Charger.Get(e)
	charger.Charging = false
	charger.Target = components.Target{}
	charger.NextChargeAt = s.Now() + cfg.Behaviors.Charger.Cooldown
	ClearMovementOverride(s, e)
}

func chargerDetach(_ *Sim, e *donburi.Entry) {
	charger := components.Charger.Get(e)
	charger.Charging = false
	charger.Target = components.Target{}
}
