package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type TowerData struct {
	AttackRange float64
	Damage      float64
	AttackSpeed float64
	NextShotAt  float64
	NextScanAt  float64
	InRange     []donburi.Entity
	Shots       int
}

var Tower = donburi.NewComponentType[TowerData]()

type DefenseData struct {
	Kind string // wall, barricade, trap
}

var Defense = donburi.NewComponentType[DefenseData]()

type PlayerData struct {
	Facing math.Vec2
}

var Player = donburi.NewComponentType[PlayerData]()
