package components

import (
	"github.com/automoto/holdout/config"
	"github.com/yohamta/donburi"
)

type WavePhase int

const (
	WavePhaseIdle WavePhase = iota
	WavePhaseSpawning
	WavePhaseWaitingForClear
	WavePhaseSubWavePause
	WavePhaseComplete
)

func (p WavePhase) String() string {
	switch p {
	case WavePhaseSpawning:
		return "spawning"
	case WavePhaseWaitingForClear:
		return "waiting-for-clear"
	case WavePhaseSubWavePause:
		return "sub-wave-pause"
	case WavePhaseComplete:
		return "complete"
	default:
		return "idle"
	}
}

// WaveStateData is the scheduler's progress through the plan. It is a
// singleton written only by the wave scheduler; anything else reads it.
type WaveStateData struct {
	Phase            WavePhase
	CurrentWaveIndex int // -1 before the first wave
	TotalWaves       int
	Mode             config.WaveMode

	ZombiesRemaining int
	ZombiesSpawned   int
	Kills            int
	IsSpawning       bool
	IsWaveActive     bool

	Countdown     float64 // seconds until the next wave, 0 when not counting
	SubWave       int     // 1-indexed, 0 outside WaveSurvival
	SubWaveTotal  int
	Elapsed       float64 // seconds since the current wave started
	TimeRemaining float64 // TimeSurvival only
}

// WaveNumber returns the 1-indexed number of the current wave.
func (w *WaveStateData) WaveNumber() int {
	return w.CurrentWaveIndex + 1
}

var WaveState = donburi.NewComponentType[WaveStateData]()
