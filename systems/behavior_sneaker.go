package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// sneakerPreTargeting replaces normal selection: rush the tower when close
// to it or far from the player, stab the player in the back, or go for
// whichever of the two is much closer.
func sneakerPreTargeting(s *Sim, e *donburi.Entry) {
	tower, okTower := s.Tower()
	player, okPlayer := s.Player()
	if !okTower || !okPlayer {
		releaseSneaker(s, e)
		return
	}

	conf := cfg.Behaviors.Sneaker
	pos := components.Transform.Get(e).Position
	playerTransform := components.Transform.Get(player)
	distTower := gamemath.Distance(pos, components.Transform.Get(tower).Position)
	distPlayer := gamemath.Distance(pos, playerTransform.Position)

	var forced components.Target
	switch {
	case distTower < conf.TowerRushDistance || distPlayer > conf.PlayerIgnoreDistance:
		forced = components.Target{Kind: components.TargetTower, Entity: tower.Entity()}
	case behindPlayer(playerTransform, pos) && distPlayer < conf.BehindDistance:
		forced = components.Target{Kind: components.TargetPlayer, Entity: player.Entity()}
	case distPlayer < distTower*conf.PlayerBias:
		forced = components.Target{Kind: components.TargetPlayer, Entity: player.Entity()}
	default:
		releaseSneaker(s, e)
		return
	}

	components.Sneaker.Get(e).LastForced = forced.Kind
	ForceTarget(s, e, forced)
}

// behindPlayer reports whether pos lies behind the player's facing.
func behindPlayer(player *components.TransformData, pos gamemath.Vec2) bool {
	if player.Facing.X == 0 && player.Facing.Y == 0 {
		return false
	}
	toAgent := gamemath.Direction(player.Position, pos)
	return gamemath.Dot(player.Facing, toAgent) < -cfg.Behaviors.Sneaker.BehindDot
}

func releaseSneaker(s *Sim, e *donburi.Entry) {
	sneaker := components.Sneaker.Get(e)
	if sneaker.LastForced == components.TargetNone {
		return
	}
	sneaker.LastForced = components.TargetNone
	ClearForcedTarget(s, e)
}

func sneakerDetach(_ *Sim, e *donburi.Entry) {
	components.Sneaker.Get(e).LastForced = components.TargetNone
}
