package systems

import "errors"

var (
	// ErrPathUnavailable is logged when no route to the objective exists and
	// targeting falls back to the nearest defense.
	ErrPathUnavailable = errors.New("path unavailable")
	// ErrWaveActive is returned by StartNextWave while a wave is running.
	ErrWaveActive = errors.New("wave already active")
	// ErrEncounterOver is returned once victory or defeat has been decided.
	ErrEncounterOver = errors.New("encounter is over")
)
