package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

type ObjectData struct {
	*resolv.Object
}

var Object = donburi.NewComponentType[ObjectData]()

// Space holds the collision space shared by every object in the arena.
var Space = donburi.NewComponentType[resolv.Space]()

// ObstacleData describes a static blocker. Height decides whether a leaper
// can clear it.
type ObstacleData struct {
	Height float64
}

var Obstacle = donburi.NewComponentType[ObstacleData]()
