package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/shared/timer"
	"github.com/automoto/holdout/systems/factory"
)

// WaveScheduler runs the wave plan: countdowns, spawn loops per wave mode,
// kill accounting and wave ends. It is the only writer of the WaveState
// singleton.
type WaveScheduler struct {
	sim   *Sim
	entry *donburi.Entry
	plan  *cfg.WavePlan
	waves []cfg.Wave

	counting     bool
	spawnTimer   timer.Handle
	endTimer     timer.Handle
	pauseTimer   timer.Handle
	budget       int   // spawns left in the current loop
	total        int   // zombies the current wave is expected to spawn
	subWaveSizes []int // WaveSurvival only
	stopped      bool
}

// NewWaveScheduler creates a scheduler for plan. A plan without waves gets
// the default ladder; waves that fail validation run clamped.
func NewWaveScheduler(s *Sim, entry *donburi.Entry, plan *cfg.WavePlan) *WaveScheduler {
	if plan == nil {
		plan = &cfg.WavePlan{}
	}
	waves := append([]cfg.Wave(nil), plan.Waves...)
	if len(waves) == 0 {
		waves = cfg.DefaultWaves(cfg.Waves.WaveCountIfEmpty)
		log.Printf("[Waves] %v: no waves configured, using %d default waves", cfg.ErrConfigurationMissing, len(waves))
	}
	for i := range waves {
		if err := waves[i].Validate(); err != nil {
			waves[i].Clamp()
			log.Printf("[Waves] %v: wave %d: %v; clamped", cfg.ErrConfigurationMissing, i+1, err)
		}
	}

	ws := &WaveScheduler{
		sim:   s,
		entry: entry,
		plan:  plan,
		waves: waves,
	}
	state := ws.State()
	state.TotalWaves = len(waves)
	state.CurrentWaveIndex = -1
	state.Phase = components.WavePhaseIdle
	return ws
}

// State returns the wave state singleton. Callers outside the scheduler
// must treat it as read-only.
func (ws *WaveScheduler) State() *components.WaveStateData {
	return components.WaveState.Get(ws.entry)
}

// Waves returns the wave sequence being run.
func (ws *WaveScheduler) Waves() []cfg.Wave { return ws.waves }

// CurrentWave returns the 1-indexed number of the current wave, 0 before the
// first one.
func (ws *WaveScheduler) CurrentWave() int { return ws.State().WaveNumber() }
func (ws *WaveScheduler) TotalWaves() int { return len(ws.waves) }
func (ws *WaveScheduler) Remaining() int { return ws.State().ZombiesRemaining }
func (ws *WaveScheduler) Mode() cfg.WaveMode { return ws.State().Mode }
func (ws *WaveScheduler) TimeRemaining() float64 { return ws.State().TimeRemaining }
func (ws *WaveScheduler) SubWave() int { return ws.State().SubWave }
func (ws *WaveScheduler) Phase() components.WavePhase { return ws.State().Phase }

// Start begins the first countdown when the plan auto-starts.
func (ws *WaveScheduler) Start() {
	if ws.plan.ShouldAutoStart() {
		ws.beginCountdown(ws.plan.FirstDelay())
	}
}

func (ws *WaveScheduler) beginCountdown(seconds float64) {
	state := ws.State()
	state.Phase = components.WavePhaseIdle
	state.Countdown = seconds
	ws.counting = true
	events.CountdownChanged.Publish(ws.sim.World, events.CountdownChangedEvent{Remaining: seconds})
}

// Update runs once per tick after combat. It advances the countdown, the
// per-wave clocks and the WaveSurvival clear check.
func (ws *WaveScheduler) Update() {
	if ws.stopped {
		return
	}
	state := ws.State()
	dt := ws.sim.DeltaTime()

	if ws.counting {
		state.Countdown = max(0, state.Countdown-dt)
		events.CountdownChanged.Publish(ws.sim.World, events.CountdownChangedEvent{Remaining: state.Countdown})
		if state.Countdown <= 0 {
			if err := ws.StartNextWave(); err != nil {
				log.Printf("[Waves] %v", err)
			}
		}
		return
	}

	if !state.IsWaveActive {
		return
	}
	state.Elapsed += dt

	switch state.Mode {
	case cfg.ModeTimeSurvival:
		state.TimeRemaining = ws.sim.Timers.Remaining(ws.endTimer)
	case cfg.ModeWaveSurvival:
		if state.Phase == components.WavePhaseWaitingForClear && len(ws.sim.LiveAgents()) == 0 {
			ws.subWaveCleared()
		}
	}
}

// StartNextWave advances to the next wave. Past the last wave the encounter
// is won. It refuses while a wave is still running.
func (ws *WaveScheduler) StartNextWave() error {
	if ws.stopped {
		return ErrEncounterOver
	}
	state := ws.State()
	if state.IsWaveActive {
		log.Printf("[Waves] StartNextWave ignored: wave %d is still active", state.WaveNumber())
		return fmt.Errorf("start wave %d: %w", state.WaveNumber()+1, ErrWaveActive)
	}

	ws.counting = false
	state.Countdown = 0

	next := state.CurrentWaveIndex + 1
	if next >= len(ws.waves) {
		ws.complete()
		return nil
	}

	wave := ws.waves[next]
	state.CurrentWaveIndex = next
	state.Mode = wave.Mode
	state.ZombiesRemaining = 0
	state.ZombiesSpawned = 0
	state.Kills = 0
	state.Elapsed = 0
	state.TimeRemaining = 0
	state.SubWave = 0
	state.SubWaveTotal = 0
	state.IsWaveActive = true
	ws.subWaveSizes = nil

	n := state.WaveNumber()
	events.WaveStarted.Publish(ws.sim.World, events.WaveStartedEvent{
		Wave:  n,
		Total: len(ws.waves),
		Name:  wave.DisplayName(next),
		Mode:  wave.Mode,
	})
	log.Printf("[Waves] %s started (%d/%d, %s, %d zombies)", wave.DisplayName(next), n, len(ws.waves), wave.Mode, wave.ZombieCount)

	interval := 1 / wave.SpawnRate
	switch wave.Mode {
	case cfg.ModeTimeSurvival:
		ws.total = wave.ZombieCount
		state.TimeRemaining = wave.Duration
		ws.endTimer = ws.sim.Timers.After(wave.Duration, ws.timeUp)
		ws.startSpawning(wave.ZombieCount, interval, cfg.Waves.InitialSpawnDelay)
	case cfg.ModeWaveSurvival:
		ws.subWaveSizes = SubWaveSizes(wave.ZombieCount, wave.SubWaves, cfg.Waves.SubWaveGrowth)
		ws.total = 0
		for _, size := range ws.subWaveSizes {
			ws.total += size
		}
		state.SubWaveTotal = len(ws.subWaveSizes)
		ws.startSubWave(1, cfg.Waves.InitialSpawnDelay)
	default:
		ws.total = wave.ZombieCount
		ws.startSpawning(wave.ZombieCount, interval, cfg.Waves.InitialSpawnDelay)
	}

	events.ZombieCountChanged.Publish(ws.sim.World, events.ZombieCountChangedEvent{Remaining: 0, Total: ws.total})
	return nil
}

// SubWaveSizes splits count across n sub-waves, sub-wave k getting
// round(count*(1+(k-1)*growth)/n) with halves rounded to even.
func SubWaveSizes(count, n int, growth float64) []int {
	if n <= 0 {
		return nil
	}
	sizes := make([]int, n)
	for k := 1; k <= n; k++ {
		sizes[k-1] = int(math.RoundToEven(float64(count) * (1 + float64(k-1)*growth) / float64(n)))
	}
	return sizes
}

func (ws *WaveScheduler) startSubWave(k int, delay float64) {
	state := ws.State()
	state.SubWave = k
	size := ws.subWaveSizes[k-1]
	events.SubWaveStarted.Publish(ws.sim.World, events.SubWaveStartedEvent{
		Wave:    state.WaveNumber(),
		SubWave: k,
		Total:   len(ws.subWaveSizes),
		Count:   size,
	})
	log.Printf("[Waves] Sub-wave %d/%d: %d zombies", k, len(ws.subWaveSizes), size)
	ws.startSpawning(size, 1/ws.currentWave().SpawnRate, delay)
}

// subWaveCleared pauses after every cleared sub-wave, the last one
// included, before starting the next sub-wave or ending the wave.
func (ws *WaveScheduler) subWaveCleared() {
	state := ws.State()
	state.Phase = components.WavePhaseSubWavePause
	next := state.SubWave + 1
	ws.pauseTimer = ws.sim.Timers.After(cfg.Waves.SubWavePause, func() {
		if ws.stopped || !ws.State().IsWaveActive {
			return
		}
		if next > ws.State().SubWaveTotal {
			ws.EndWave()
			return
		}
		ws.startSubWave(next, 0)
	})
}

func (ws *WaveScheduler) currentWave() cfg.Wave {
	return ws.waves[ws.State().CurrentWaveIndex]
}

// startSpawning spawns count agents, the first after delay and the rest
// every interval.
func (ws *WaveScheduler) startSpawning(count int, interval, delay float64) {
	state := ws.State()
	state.Phase = components.WavePhaseSpawning
	ws.budget = count
	if count <= 0 {
		ws.finishSpawning()
		return
	}
	state.IsSpawning = true

	begin := func() {
		ws.spawnTick()
		if ws.State().IsSpawning {
			ws.spawnTimer = ws.sim.Timers.Every(interval, ws.spawnTick)
		}
	}
	if delay <= 0 {
		begin()
		return
	}
	ws.spawnTimer = ws.sim.Timers.After(delay, begin)
}

func (ws *WaveScheduler) spawnTick() {
	state := ws.State()
	if ws.stopped || !state.IsSpawning {
		ws.sim.Timers.Cancel(ws.spawnTimer)
		return
	}
	if ws.budget > 0 {
		ws.spawnZombie()
		ws.budget--
	}
	if ws.budget > 0 {
		return
	}

	if state.Mode == cfg.ModeTimeSurvival && ws.sim.Timers.Remaining(ws.endTimer) > cfg.Waves.TimeSurvivalRefill {
		// Spawning resumes from the middle of the count
		count := ws.currentWave().ZombieCount
		if refill := count - count/2 - 1; refill > 0 {
			ws.budget = refill
			ws.total += refill
			return
		}
	}
	ws.finishSpawning()
}

func (ws *WaveScheduler) finishSpawning() {
	ws.sim.Timers.Cancel(ws.spawnTimer)
	ws.spawnTimer = 0
	state := ws.State()
	state.IsSpawning = false
	state.Phase = components.WavePhaseWaitingForClear
	if state.Mode == cfg.ModeStandard {
		ws.checkStandardEnd()
	}
}

func (ws *WaveScheduler) checkStandardEnd() {
	state := ws.State()
	if state.IsWaveActive && !state.IsSpawning && state.ZombiesRemaining == 0 {
		ws.EndWave()
	}
}

// timeUp ends a TimeSurvival wave whatever is still in flight.
func (ws *WaveScheduler) timeUp() {
	state := ws.State()
	if !state.IsWaveActive {
		return
	}
	state.TimeRemaining = 0
	ws.endTimer = 0
	ws.EndWave()
}

// spawnZombie places one agent of the current wave.
func (ws *WaveScheduler) spawnZombie() {
	state := ws.State()
	wave := ws.currentWave()
	n := state.WaveNumber()

	pos := ws.sim.Spawns.Allocate(ws.sim.defenderPosition())
	pos = ws.sim.clampToArena(pos, 1)
	archetype := ws.pickArchetype(&wave, n)
	e := factory.CreateZombie(ws.sim.World, archetype, pos, n)

	state.ZombiesSpawned++
	state.ZombiesRemaining++
	events.ZombieCountChanged.Publish(ws.sim.World, events.ZombieCountChangedEvent{
		Remaining: state.ZombiesRemaining,
		Total:     ws.total,
	})
	if cfg.Debug.LogSpawns {
		log.Printf("[Spawn] %s %v at %.1f,%.1f (wave %d, %d/%d)", archetype, e.Entity(), pos.X, pos.Y, n, state.ZombiesSpawned, ws.total)
	}
}

// pickArchetype draws a weighted archetype for wave n. Without a table of
// its own the wave draws from every archetype unlocked by n.
func (ws *WaveScheduler) pickArchetype(wave *cfg.Wave, n int) cfg.Archetype {
	state := ws.State()
	env := cfg.SpawnEnv{
		Wave:    n,
		Elapsed: state.Elapsed,
		Alive:   len(ws.sim.LiveAgents()),
		Spawned: state.ZombiesSpawned,
	}

	var choices []cfg.Archetype
	var weights []float64
	if len(wave.Archetypes) == 0 {
		for _, a := range cfg.AllArchetypes() {
			stats := cfg.Zombies[a]
			if stats.SpawnWeight > 0 && n >= stats.MinWave {
				choices = append(choices, a)
				weights = append(weights, stats.SpawnWeight)
			}
		}
	} else {
		for i := range wave.Archetypes {
			entry := &wave.Archetypes[i]
			if entry.Weight > 0 && entry.Eligible(env) {
				choices = append(choices, entry.Archetype)
				weights = append(weights, entry.Weight)
			}
		}
	}

	idx := gamemath.WeightedIndex(weights, ws.sim.Deps.Rand.Float64())
	if idx < 0 {
		return cfg.Shambler
	}
	return choices[idx]
}

// ZombieKilled records the death of an agent spawned in wave. Deaths from
// earlier waves do not touch the current count.
func (ws *WaveScheduler) ZombieKilled(wave int) {
	state := ws.State()
	if wave != state.WaveNumber() {
		return
	}
	state.Kills++
	if state.ZombiesRemaining > 0 {
		state.ZombiesRemaining--
	}
	events.ZombieCountChanged.Publish(ws.sim.World, events.ZombieCountChangedEvent{
		Remaining: state.ZombiesRemaining,
		Total:     ws.total,
	})
	if state.Mode == cfg.ModeStandard {
		ws.checkStandardEnd()
	}
}

// EndWave closes the current wave. The last wave wins the encounter;
// otherwise the next countdown starts and the round is reported.
func (ws *WaveScheduler) EndWave() {
	state := ws.State()
	if !state.IsWaveActive {
		return
	}
	ws.cancelTimers()
	state.IsWaveActive = false
	state.IsSpawning = false

	n := state.WaveNumber()
	events.WaveEnded.Publish(ws.sim.World, events.WaveEndedEvent{Wave: n, Total: len(ws.waves)})
	log.Printf("[Waves] Wave %d/%d ended (%d kills)", n, len(ws.waves), state.Kills)

	if n >= len(ws.waves) {
		ws.complete()
		return
	}
	ws.beginCountdown(ws.plan.BetweenWaves())
	ws.sim.Encounter.RoundComplete(n)
}

func (ws *WaveScheduler) complete() {
	state := ws.State()
	state.Phase = components.WavePhaseComplete
	ws.counting = false
	state.Countdown = 0
	log.Printf("[Waves] All %d waves complete", len(ws.waves))
	ws.sim.Encounter.Victory()
}

// Stop halts all wave activity once the encounter is decided.
func (ws *WaveScheduler) Stop() {
	if ws.stopped {
		return
	}
	ws.stopped = true
	ws.counting = false
	ws.cancelTimers()
	state := ws.State()
	state.IsSpawning = false
	state.Countdown = 0
}

func (ws *WaveScheduler) cancelTimers() {
	for _, h := range []timer.Handle{ws.spawnTimer, ws.endTimer, ws.pauseTimer} {
		ws.sim.Timers.Cancel(h)
	}
	ws.spawnTimer, ws.endTimer, ws.pauseTimer = 0, 0, 0
}
