package systems

import (
	"github.com/solarlune/resolv"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
)

// leaperTick advances a jump in flight, or looks for a low obstacle ahead
// and jumps over it.
func leaperTick(s *Sim, e *donburi.Entry) {
	leaper := components.Leaper.Get(e)
	if leaper.Jumping {
		advanceJump(s, e, leaper)
		return
	}
	if s.Now() < leaper.NextJumpAt {
		return
	}

	target := components.TargetState.Get(e).Current
	targetPos, ok := targetPoint(s, target)
	if !ok {
		return
	}
	conf := cfg.Behaviors.Leaper
	pos := components.Transform.Get(e).Position
	dir := gamemath.Direction(pos, targetPos)
	if dir.X == 0 && dir.Y == 0 {
		return
	}

	self := components.Object.Get(e).Object
	probeEnd := gamemath.Add(pos, gamemath.Scale(dir, conf.DetectionDistance))
	hit, _, ok := castRay(s.Space, self, pos, probeEnd, tags.ResolvSolid, tags.ResolvDefense)
	if !ok || obstacleHeight(s, hit) >= conf.JumpHeight {
		return
	}

	landing := s.clampToArena(gamemath.Add(pos, gamemath.Scale(dir, conf.JumpDistance)), self.W)
	if landingBlocked(s, self, landing) {
		return
	}

	leaper.Jumping = true
	leaper.From = pos
	leaper.To = landing
	leaper.FromHeight = components.Transform.Get(e).Height
	leaper.ToHeight = groundHeight(s, landing)
	leaper.Progress = gween.New(0, 1, float32(conf.JumpDuration), ease.Linear)
	DriveMovement(e, landing)
}

func advanceJump(s *Sim, e *donburi.Entry, leaper *components.LeaperData) {
	progress, done := leaper.Progress.Update(float32(s.DeltaTime()))
	pos, height := gamemath.ArcPoint(leaper.From, leaper.To, leaper.FromHeight, leaper.ToHeight,
		cfg.Behaviors.Leaper.JumpHeight, float64(progress))
	if done {
		pos, height = leaper.To, leaper.ToHeight
	}

	transform := components.Transform.Get(e)
	transform.Facing = gamemath.Direction(leaper.From, leaper.To)
	transform.Height = height
	setPosition(e, pos)

	if done {
		leaper.Jumping = false
		leaper.Progress = nil
		leaper.NextJumpAt = s.Now() + cfg.Behaviors.Leaper.Cooldown
		leaper.Jumps++
		ClearMovementOverride(s, e)
	}
}

// obstacleHeight returns how tall a hit obstacle is.
func obstacleHeight(s *Sim, o obstacle) float64 {
	if o.Entity == 0 || !s.World.Valid(o.Entity) {
		return cfg.Defense.Height
	}
	e := s.World.Entry(o.Entity)
	if e.HasComponent(components.Obstacle) {
		return components.Obstacle.Get(e).Height
	}
	return cfg.Defense.Height
}

// groundHeight probes downward at p: the tallest raised ground under it, or 0.
func groundHeight(s *Sim, p gamemath.Vec2) float64 {
	height := 0.0
	for _, o := range obstaclesNear(s.Space, gamemath.Rect{X: p.X, Y: p.Y}, nil, tags.ResolvGround) {
		if o.Rect.Contains(p) {
			height = max(height, obstacleHeight(s, o))
		}
	}
	return height
}

// landingBlocked reports whether an agent box placed at p would overlap a
// blocker.
func landingBlocked(s *Sim, self *resolv.Object, p gamemath.Vec2) bool {
	box := gamemath.Rect{X: p.X - self.W/2, Y: p.Y - self.H/2, W: self.W, H: self.H}
	return len(obstaclesNear(s.Space, box, self, movementBlockers...)) > 0
}

func leaperDetach(_ *Sim, e *donburi.Entry) {
	leaper := components.Leaper.Get(e)
	leaper.Jumping = false
	leaper.Progress = nil
}
