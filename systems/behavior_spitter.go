package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// spitterTick keeps a spitter at its preferred stand-off distance and lobs
// acid at its target whenever the cooldown allows.
func spitterTick(s *Sim, e *donburi.Entry) {
	spitter := components.Spitter.Get(e)
	agent := components.Agent.Get(e)

	if spitter.BackingOff {
		if !OverrideArrived(e) && !agent.Blocked {
			return
		}
		spitter.BackingOff = false
		ClearMovementOverride(s, e)
	}

	target := components.TargetState.Get(e).Current
	targetPos, ok := targetPoint(s, target)
	if !ok {
		releaseHold(s, e, spitter)
		return
	}

	conf := cfg.Behaviors.Spitter
	pos := components.Transform.Get(e).Position
	dist, _ := targetDistance(s, pos, target)

	if spitterAlone(s, e, pos) && dist < conf.PreferredDistance*conf.BackoffFraction {
		away := gamemath.Direction(targetPos, pos)
		if away.X == 0 && away.Y == 0 {
			away = gamemath.Scale(components.Transform.Get(e).Facing, -1)
		}
		point := s.clampToArena(gamemath.Add(pos, gamemath.Scale(away, conf.BackoffDistance)), components.Object.Get(e).Object.W)
		SetMovementOverride(e, point, 0)
		spitter.BackingOff = true
		spitter.Holding = false
		return
	}

	if dist <= conf.SpitRange && s.Now() >= spitter.NextSpitAt {
		spit(s, e, target, targetPos)
		spitter.NextSpitAt = s.Now() + conf.Cooldown
		spitter.Spits++
	}

	if dist < conf.PreferredDistance {
		if !spitter.Holding {
			SetOverrideMovement(s, e, true)
			spitter.Holding = true
		}
		return
	}
	releaseHold(s, e, spitter)
}

// spitterAlone reports whether fewer than AloneThreshold other agents are
// near pos.
func spitterAlone(s *Sim, e *donburi.Entry, pos gamemath.Vec2) bool {
	snapshot := s.Snapshot()
	if snapshot == nil {
		snapshot = BuildSnapshot(s.World)
	}
	conf := cfg.Behaviors.Spitter
	return snapshot.CountAgentsWithin(pos, conf.AloneRadius, e.Entity()) < conf.AloneThreshold
}

func spit(s *Sim, e *donburi.Entry, target components.Target, targetPos gamemath.Vec2) {
	pos := components.Transform.Get(e).Position
	components.Transform.Get(e).Facing = gamemath.Direction(pos, targetPos)
	launchProjectile(s, e.Entity(), pos, targetPos, target, components.Agent.Get(e).Damage)
}

func releaseHold(s *Sim, e *donburi.Entry, spitter *components.SpitterData) {
	if !spitter.Holding {
		return
	}
	spitter.Holding = false
	SetOverrideMovement(s, e, false)
}

func spitterDetach(_ *Sim, e *donburi.Entry) {
	spitter := components.Spitter.Get(e)
	spitter.BackingOff = false
	spitter.Holding = false
}
