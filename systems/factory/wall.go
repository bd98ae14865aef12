package factory

import (
	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// DefaultWallHeight is used for walls whose map object carries no height.
// Anything at or above the leaper jump height cannot be jumped.
const DefaultWallHeight = 10

func CreateWall(w donburi.World, r gamemath.Rect, height float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(w)
	if height <= 0 {
		height = DefaultWallHeight
	}

	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	addObject(w, wall, obj)
	components.Obstacle.SetValue(wall, components.ObstacleData{Height: height})

	return wall
}

// CreateGround creates a raised walkable area. It never blocks movement; the
// leaper probes it for landing height.
func CreateGround(w donburi.World, r gamemath.Rect, height float64) *donburi.Entry {
	ground := archetypes.Ground.Spawn(w)

	obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tags.ResolvGround)
	obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
	addObject(w, ground, obj)
	components.Obstacle.SetValue(ground, components.ObstacleData{Height: height})

	return ground
}
