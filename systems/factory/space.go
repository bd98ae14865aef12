package factory

import (
	"math"

	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// SpaceCellSize is the broadphase cell size of the collision space in world units.
const SpaceCellSize = 2

func CreateSpace(w donburi.World, width, height float64) *donburi.Entry {
	space := archetypes.Space.Spawn(w)
	cellsW := int(math.Ceil(width))
	cellsH := int(math.Ceil(height))
	spaceData := resolv.NewSpace(cellsW, cellsH, SpaceCellSize, SpaceCellSize)
	components.Space.Set(space, spaceData)
	return space
}

// addObject links obj to its entry and registers it with the space if one exists.
func addObject(w donburi.World, e *donburi.Entry, obj *resolv.Object) {
	obj.Data = e // Link for O(1) lookup
	components.Object.SetValue(e, components.ObjectData{Object: obj})

	if spaceEntry, ok := components.Space.First(w); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}

// newBox creates a rectangle object centered on (cx, cy).
func newBox(cx, cy, width, height float64, tags ...string) *resolv.Object {
	obj := resolv.NewObject(cx-width/2, cy-height/2, width, height, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, width, height))
	return obj
}
