package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type OverrideMode int

const (
	OverrideNone OverrideMode = iota
	OverrideFixedPoint
	OverrideForcedTarget
)

func (m OverrideMode) String() string {
	switch m {
	case OverrideFixedPoint:
		return "fixed-point"
	case OverrideForcedTarget:
		return "forced-target"
	default:
		return "none"
	}
}

// MovementOverrideData records a behavior's hold on an agent's movement.
// While Mode is not OverrideNone the agent's own destination updates are
// suppressed; the behavior that set it is responsible for clearing it.
type MovementOverrideData struct {
	Mode  OverrideMode
	Point math.Vec2
	Speed float64 // 0 uses the agent's current speed
	// Driven means the behavior positions the agent itself and the mover
	// leaves it alone.
	Driven bool
}

func (m *MovementOverrideData) Active() bool { return m.Mode != OverrideNone }

var MovementOverride = donburi.NewComponentType[MovementOverrideData]()
