package components

// AgentState is the combat state of a zombie.
type AgentState int

const (
	StateSeeking AgentState = iota
	StateInRange
	StateAttacking
	StateDead
)

func (s AgentState) String() string {
	switch s {
	case StateInRange:
		return "in-range"
	case StateAttacking:
		return "attacking"
	case StateDead:
		return "dead"
	default:
		return "seeking"
	}
}
