package factory

import (
	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	"github.com/yohamta/donburi"
)

func createWaveState(w donburi.World) *donburi.Entry {
	if e, ok := components.WaveState.First(w); ok {
		return e
	}
	e := archetypes.WaveState.Spawn(w)
	components.WaveState.SetValue(e, components.WaveStateData{CurrentWaveIndex: -1})
	return e
}

func createEncounter(w donburi.World) *donburi.Entry {
	if e, ok := components.Encounter.First(w); ok {
		return e
	}
	e := archetypes.Encounter.Spawn(w)
	components.Encounter.SetValue(e, components.EncounterData{Outcome: components.OutcomeInProgress})
	return e
}
