package systems

import (
	"log"
	"math/rand"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/pathing"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/shared/leveldata"
	"github.com/automoto/holdout/shared/timer"
	"github.com/automoto/holdout/systems/factory"
	"github.com/automoto/holdout/tags"
)

// Default arena size used when no map is loaded.
const (
	DefaultArenaWidth  = 128
	DefaultArenaHeight = 128
)

// Deps are the collaborators injected into a simulation. Nil fields are
// replaced with defaults by NewSim.
type Deps struct {
	Pathing pathing.Provider
	Game    GameManager
	Loot    LootSpawner
	Rand    *rand.Rand
}

// Options configure NewSim.
type Options struct {
	Deps
	Plan   *cfg.WavePlan
	Width  float64
	Height float64
	// Workers overrides cfg.Targeting.Workers when positive.
	Workers int
}

// System is one step of the tick, run in registration order.
type System func(s *Sim)

// Sim owns the world and every scheduler of one encounter. All mutation
// happens on the goroutine calling Update.
type Sim struct {
	World  donburi.World
	Space  *resolv.Space
	Timers *timer.Scheduler
	Deps   Deps

	Selector  *TargetSelector
	Waves     *WaveScheduler
	Spawns    *SpawnPointAllocator
	Encounter *EncounterCoordinator

	Width, Height float64

	dt            float64
	snapshot      *Snapshot
	snapshotStale bool // an indexed entity left play since the last build
	systems       []System
	ownsPathing   bool
}

func NewSim(opts Options) *Sim {
	deps := opts.Deps
	if deps.Game == nil {
		deps.Game = NewLedger()
	}
	if deps.Loot == nil {
		deps.Loot = nopLoot{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(1))
	}
	ownsPathing := deps.Pathing == nil
	if ownsPathing {
		deps.Pathing = pathing.Direct{}
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = DefaultArenaWidth, DefaultArenaHeight
	}

	w := donburi.NewWorld()
	spaceEntry := factory.CreateSpace(w, width, height)
	waveEntry, encounterEntry := factory.CreateSingletons(w)

	s := &Sim{
		World:       w,
		Space:       components.Space.Get(spaceEntry),
		Timers:      timer.New(),
		Deps:        deps,
		Width:       width,
		Height:      height,
		ownsPathing: ownsPathing,
	}

	workers := cfg.Targeting.Workers
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	s.Selector = NewTargetSelector(deps.Pathing, workers)
	s.Encounter = newEncounterCoordinator(s, encounterEntry)
	s.Spawns = NewSpawnPointAllocator(planSpawnPoints(opts.Plan), cfg.Spawning.MinDistanceFromDefender, deps.Rand)
	s.Waves = NewWaveScheduler(s, waveEntry, opts.Plan)

	s.systems = []System{
		UpdateTargeting,
		UpdateBehaviors,
		UpdateAgents,
		UpdateMovement,
		UpdateProjectiles,
		UpdatePuddles,
		UpdateTower,
		UpdateCombat,
		func(s *Sim) { s.Waves.Update() },
		UpdateDeaths,
	}

	events.AgentDied.Subscribe(w, s.onAgentDied)

	return s
}

func planSpawnPoints(plan *cfg.WavePlan) []gamemath.Vec2 {
	if plan == nil {
		return nil
	}
	points := make([]gamemath.Vec2, 0, len(plan.SpawnPoints))
	for _, p := range plan.SpawnPoints {
		points = append(points, gamemath.V(p.X, p.Y))
	}
	return points
}

// LoadArena creates the arena's entities. When no pathing provider was
// injected, a nav grid is built from the arena walls.
func (s *Sim) LoadArena(arena *leveldata.Arena) {
	factory.CreateArena(s.World, arena)
	if len(s.Spawns.Points()) == 0 && len(arena.SpawnPoints) > 0 {
		s.Spawns.SetPoints(arena.SpawnPoints)
	}
	if s.ownsPathing {
		s.SetPathing(pathing.NewNavGrid(s.Space, s.Width, s.Height, cfg.Pathfinding.CellSize, tags.ResolvSolid))
	}
}

// SetPathing replaces the pathing provider.
func (s *Sim) SetPathing(p pathing.Provider) {
	s.Deps.Pathing = p
	s.Selector.Pathing = p
}

// Start begins the encounter: the first wave countdown runs when the plan
// auto-starts, otherwise the caller starts waves with StartNextWave.
func (s *Sim) Start() {
	s.Waves.Start()
	events.Flush(s.World)
}

// Update advances the simulation by dt wall-clock seconds, scaled by the
// time scale. A paused simulation or a zero scale leaves all state untouched.
func (s *Sim) Update(dt float64) {
	scaled := s.Timers.Scale(dt)
	if scaled <= 0 {
		return
	}
	s.dt = scaled
	s.snapshot = BuildSnapshot(s.World)
	s.snapshotStale = false
	s.Timers.Advance(scaled)
	if s.snapshotStale {
		s.snapshot = BuildSnapshot(s.World)
		s.snapshotStale = false
	}

	for _, system := range s.systems {
		system(s)
	}

	events.Flush(s.World)
}

// Now returns the simulation time in seconds.
func (s *Sim) Now() float64 { return s.Timers.Now() }

// DeltaTime returns the scaled step of the current tick.
func (s *Sim) DeltaTime() float64 { return s.dt }

func (s *Sim) Pause() { s.Timers.Pause() }
func (s *Sim) Resume() { s.Timers.Resume() }
func (s *Sim) Paused() bool { return s.Timers.Paused() }
func (s *Sim) SetTimeScale(scale float64) { s.Timers.SetTimeScale(scale) }
func (s *Sim) Snapshot() *Snapshot { return s.snapshot }
func (s *Sim) Outcome() components.Outcome { return s.Encounter.Outcome() }
func (s *Sim) Rand() *rand.Rand { return s.Deps.Rand }
func (s *Sim) Entry(e donburi.Entity) *donburi.Entry { return s.World.Entry(e) }

// LiveAgents returns every agent that has not died, in query order.
func (s *Sim) LiveAgents() []*donburi.Entry {
	var out []*donburi.Entry
	tags.Zombie.Each(s.World, func(e *donburi.Entry) {
		if components.Agent.Get(e).Alive() {
			out = append(out, e)
		}
	})
	return out
}

// Tower returns the standing tower, if any.
func (s *Sim) Tower() (*donburi.Entry, bool) {
	return firstStanding(s.World, tags.Tower)
}

// Player returns the living player, if any.
func (s *Sim) Player() (*donburi.Entry, bool) {
	return firstStanding(s.World, tags.Player)
}

func firstStanding(w donburi.World, tag *donburi.ComponentType[donburi.Tag]) (*donburi.Entry, bool) {
	var found *donburi.Entry
	tag.Each(w, func(e *donburi.Entry) {
		if found == nil && !e.HasComponent(components.Death) {
			found = e
		}
	})
	return found, found != nil
}

// defenderPosition is the point spawns keep their distance from: the tower,
// else the player.
func (s *Sim) defenderPosition() *gamemath.Vec2 {
	if e, ok := s.Tower(); ok {
		p := components.Transform.Get(e).Position
		return &p
	}
	if e, ok := s.Player(); ok {
		p := components.Transform.Get(e).Position
		return &p
	}
	return nil
}

// clampToArena keeps p inside the arena with a margin.
func (s *Sim) clampToArena(p gamemath.Vec2, margin float64) gamemath.Vec2 {
	return gamemath.V(
		gamemath.Clamp(p.X, margin, s.Width-margin),
		gamemath.Clamp(p.Y, margin, s.Height-margin),
	)
}

func (s *Sim) onAgentDied(w donburi.World, ev events.AgentDiedEvent) {
	if !w.Valid(ev.Entity) {
		return
	}
	detachBehavior(s, w.Entry(ev.Entity))
	if cfg.Debug.LogSpawns {
		log.Printf("[Agent] %s from wave %d died", ev.Archetype, ev.Wave)
	}
}
