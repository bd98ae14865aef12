package components

import "github.com/yohamta/donburi"

type Outcome int

const (
	OutcomeInProgress Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "in-progress"
	}
}

// EncounterData is the singleton result record of an encounter.
type EncounterData struct {
	Outcome         Outcome
	Reason          string
	RoundsCompleted int
	FinishedAt      float64
}

var Encounter = donburi.NewComponentType[EncounterData]()
