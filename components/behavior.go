package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type ChargerData struct {
	Charging     bool
	Target       Target
	Point        math.Vec2
	EndsAt       float64
	NextChargeAt float64
	Charges      int
	Hits         int
}

type LeaperData struct {
	Jumping    bool
	From, To   math.Vec2
	FromHeight float64
	ToHeight   float64
	Progress   *gween.Tween
	NextJumpAt float64
	Jumps      int
}

type SneakerData struct {
	LastForced TargetKind
}

type SpitterData struct {
	NextSpitAt float64
	BackingOff bool
	Holding    bool
	Spits      int
}

var (
	Charger = donburi.NewComponentType[ChargerData]()
	Leaper  = donburi.NewComponentType[LeaperData]()
	Sneaker = donburi.NewComponentType[SneakerData]()
	Spitter = donburi.NewComponentType[SpitterData]()
)
