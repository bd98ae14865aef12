package systems

import (
	"math"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
)

// obstacle is a box a ray or a moving agent can hit.
type obstacle struct {
	Entity donburi.Entity
	Rect   gamemath.Rect
	Tag    string
}

func objectRect(obj *resolv.Object) gamemath.Rect {
	return gamemath.Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
}

func objectEntity(obj *resolv.Object) (donburi.Entity, bool) {
	if e, ok := obj.Data.(*donburi.Entry); ok && e != nil {
		return e.Entity(), true
	}
	return 0, false
}

func firstTag(obj *resolv.Object, wanted []string) (string, bool) {
	for _, tag := range wanted {
		if obj.HasTags(tag) {
			return tag, true
		}
	}
	return "", false
}

// obstaclesNear collects space objects carrying any of wanted whose box
// intersects area, skipping self.
func obstaclesNear(space *resolv.Space, area gamemath.Rect, self *resolv.Object, wanted ...string) []obstacle {
	if space == nil {
		return nil
	}
	var out []obstacle
	for _, obj := range space.Objects() {
		if obj == self {
			continue
		}
		tag, ok := firstTag(obj, wanted)
		if !ok {
			continue
		}
		r := objectRect(obj)
		if !r.Intersects(area) {
			continue
		}
		entity, _ := objectEntity(obj)
		out = append(out, obstacle{Entity: entity, Rect: r, Tag: tag})
	}
	return out
}

// marchRay steps from a towards b and returns the first obstacle whose box
// the probe touches, with the distance travelled. It uses manual AABB tests
// so it never touches the collision space.
func marchRay(a, b gamemath.Vec2, candidates []obstacle) (obstacle, float64, bool) {
	dist := gamemath.Distance(a, b)
	if dist == 0 || len(candidates) == 0 {
		return obstacle{}, 0, false
	}
	dir := gamemath.Scale(gamemath.Sub(b, a), 1/dist)

	// Use config values for LOS checks
	stepSize := cfg.Pathfinding.LOSStepSize
	checkSize := cfg.Pathfinding.LOSCheckSize

	for d := 0.0; d <= dist; d += stepSize {
		p := gamemath.Add(a, gamemath.Scale(dir, d))
		for _, c := range candidates {
			if c.Rect.OverlapsBox(p, checkSize) {
				return c, d, true
			}
		}
	}
	// Always probe the exact end point
	for _, c := range candidates {
		if c.Rect.OverlapsBox(b, checkSize) {
			return c, dist, true
		}
	}
	return obstacle{}, 0, false
}

// castRay returns the first obstacle with one of wanted along the segment
// from a to b.
func castRay(space *resolv.Space, self *resolv.Object, a, b gamemath.Vec2, wanted ...string) (obstacle, float64, bool) {
	area := gamemath.SegmentBounds(a, b, cfg.Pathfinding.LOSCheckSize)
	return marchRay(a, b, obstaclesNear(space, area, self, wanted...))
}

// rayEnd clips a ray of length maxLen from a towards b.
func rayEnd(a, b gamemath.Vec2, maxLen float64) gamemath.Vec2 {
	return gamemath.Add(a, gamemath.Scale(gamemath.Direction(a, b), math.Min(maxLen, gamemath.Distance(a, b))))
}
