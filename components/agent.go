package components

import (
	"github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/timer"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// AgentData is the combat agent of a zombie.
type AgentData struct {
	Archetype config.Archetype
	Behavior  config.BehaviorKind
	Wave      int // wave number the agent was spawned in
	State     AgentState

	// Stats, already scaled for the spawn wave
	Damage      float64
	AttackRange float64
	AttackRate  float64
	AggroRange  float64
	WalkSpeed   float64
	RunSpeed    float64
	Speed       float64 // current move speed
	Gold        int
	Experience  int

	// Deadlines in simulation seconds
	NextTargetAt     float64
	NextRangeCheckAt float64
	NextAttackAt     float64

	InRange       bool
	PendingAttack timer.Handle

	// Navigation
	Destination    math.Vec2
	HasDestination bool
	Path           []math.Vec2
	PathIndex      int
	Stopped        bool
	Blocked        bool // last movement step was refused by collision
}

func (a *AgentData) Alive() bool { return a.State != StateDead }

var Agent = donburi.NewComponentType[AgentData]()
