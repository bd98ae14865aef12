package components

import "github.com/yohamta/donburi"

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetPlayer
	TargetTower
	TargetDefense
)

func (k TargetKind) String() string {
	switch k {
	case TargetPlayer:
		return "player"
	case TargetTower:
		return "tower"
	case TargetDefense:
		return "defense"
	default:
		return "none"
	}
}

// Target is a weak reference to whatever an agent is going after. The
// agent never owns the entity; it is validated against the world before use.
type Target struct {
	Kind   TargetKind
	Entity donburi.Entity
}

func (t Target) IsNone() bool { return t.Kind == TargetNone }

// Valid reports whether the referenced entity still exists and is alive.
func (t Target) Valid(w donburi.World) bool {
	if t.Kind == TargetNone || !w.Valid(t.Entity) {
		return false
	}
	e := w.Entry(t.Entity)
	return !e.HasComponent(Death)
}

// TargetData holds the current and forced targets of an agent.
type TargetData struct {
	Current Target
	Forced  Target // suppresses normal selection while set
}

var TargetState = donburi.NewComponentType[TargetData]()
