// Package leveldata parses arena layouts from Tiled TMX files. It has no
// dependencies on donburi or resolv; the factory turns an Arena into
// entities and collision objects.
package leveldata

import "github.com/automoto/holdout/shared/gamemath"

// Arena holds everything a TMX file places in the world, in world units.
type Arena struct {
	Name        string
	Width       float64
	Height      float64
	Walls       []Block
	Ground      []Block
	Defenses    []DefenseSpawn
	SpawnPoints []gamemath.Vec2
	Tower       *gamemath.Vec2
	Player      *gamemath.Vec2
}

// Block is a static rectangle with a height above the ground plane.
type Block struct {
	Rect   gamemath.Rect
	Height float64
}

// DefenseSpawn is a placed defense.
type DefenseSpawn struct {
	Rect   gamemath.Rect
	Kind   string
	Height float64
	Health float64 // 0 uses the configured default
}
