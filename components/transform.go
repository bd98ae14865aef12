package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// TransformData is the authoritative position of an entity. Position is the
// center on the ground plane; the collision object is kept in sync with it.
type TransformData struct {
	Position math.Vec2
	Height   float64   // vertical offset, non-zero while airborne or on raised ground
	Facing   math.Vec2 // unit vector, zero when unknown
}

var Transform = donburi.NewComponentType[TransformData]()
