package systems

import (
	"log"

	"github.com/yohamta/donburi"
	"golang.org/x/sync/errgroup"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/events"
	"github.com/automoto/holdout/pathing"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
)

// ViewPoint is a single entity in a WorldView.
type ViewPoint struct {
	Entity   donburi.Entity
	Position gamemath.Vec2
	OK       bool
}

// DefenseView is a standing defense in a WorldView.
type DefenseView struct {
	Entity   donburi.Entity
	Position gamemath.Vec2
	Rect     gamemath.Rect
}

// WorldView is the read-only picture of the world target selection works
// from. It is built once per targeting pass so selection can run on worker
// goroutines without touching the world.
type WorldView struct {
	Player   ViewPoint
	Tower    ViewPoint
	Defenses []DefenseView // entity order
	Solids   []gamemath.Rect
	Snapshot *Snapshot
}

// BuildWorldView captures the player, tower, defenses and walls of s.
func BuildWorldView(s *Sim) *WorldView {
	view := &WorldView{Snapshot: s.snapshot}
	if e, ok := s.Player(); ok {
		view.Player = ViewPoint{Entity: e.Entity(), Position: components.Transform.Get(e).Position, OK: true}
	}
	if e, ok := s.Tower(); ok {
		view.Tower = ViewPoint{Entity: e.Entity(), Position: components.Transform.Get(e).Position, OK: true}
	}
	tags.Defense.Each(s.World, func(e *donburi.Entry) {
		if e.HasComponent(components.Death) {
			return
		}
		view.Defenses = append(view.Defenses, DefenseView{
			Entity:   e.Entity(),
			Position: components.Transform.Get(e).Position,
			Rect:     objectRect(components.Object.Get(e).Object),
		})
	})
	sortByEntity(view.Defenses, func(d DefenseView) donburi.Entity { return d.Entity })
	tags.Wall.Each(s.World, func(e *donburi.Entry) {
		view.Solids = append(view.Solids, objectRect(components.Object.Get(e).Object))
	})
	return view
}

// NearestDefense returns the standing defense closest to p by center
// distance. Only defenses captured in the view qualify.
func (v *WorldView) NearestDefense(p gamemath.Vec2) (donburi.Entity, bool) {
	if v.Snapshot != nil {
		return v.Snapshot.NearestDefense(p, v.standing)
	}
	best, bestDist, found := donburi.Entity(0), 0.0, false
	for _, d := range v.Defenses {
		dist := gamemath.DistanceSq(p, d.Position)
		if !found || dist < bestDist {
			best, bestDist, found = d.Entity, dist, true
		}
	}
	return best, found
}

func (v *WorldView) standing(e donburi.Entity) bool {
	for _, d := range v.Defenses {
		if d.Entity == e {
			return true
		}
	}
	return false
}

// Selection is the outcome of one target evaluation. Path is the route to
// the target when selection already computed one.
type Selection struct {
	Target components.Target
	Path   pathing.Polyline
}

// TargetSelector decides what an agent goes after.
type TargetSelector struct {
	Pathing     pathing.Provider
	Workers     int
	BlockRadius float64
}

func NewTargetSelector(p pathing.Provider, workers int) *TargetSelector {
	return &TargetSelector{
		Pathing:     p,
		Workers:     workers,
		BlockRadius: cfg.Targeting.BlockRadius,
	}
}

// SelectTarget picks a target for an agent at pos, in priority order:
// the player inside aggro range, a defense blocking the path to the tower,
// the tower, the nearest defense when the tower is unreachable, and finally
// the player when there is no tower.
func (ts *TargetSelector) SelectTarget(pos gamemath.Vec2, aggroRange float64, view *WorldView) components.Target {
	return ts.selectTarget(pos, aggroRange, view).Target
}

func (ts *TargetSelector) selectTarget(pos gamemath.Vec2, aggroRange float64, view *WorldView) Selection {
	if view.Player.OK && gamemath.Distance(pos, view.Player.Position) < aggroRange {
		return Selection{Target: components.Target{Kind: components.TargetPlayer, Entity: view.Player.Entity}}
	}

	if view.Tower.OK {
		tower := components.Target{Kind: components.TargetTower, Entity: view.Tower.Entity}
		path, found := ts.Pathing.FindPath(pos, view.Tower.Position)
		if found {
			if blocker, blocked := ts.IsDefenseBlockingPath(path, view); blocked {
				return Selection{Target: components.Target{Kind: components.TargetDefense, Entity: blocker}}
			}
			return Selection{Target: tower, Path: path}
		}

		if cfg.Debug.LogTargeting {
			log.Printf("[Targeting] %v from %.1f,%.1f", ErrPathUnavailable, pos.X, pos.Y)
		}
		if nearest, ok := view.NearestDefense(pos); ok {
			return Selection{Target: components.Target{Kind: components.TargetDefense, Entity: nearest}}
		}
		// Best effort: walk at the tower anyway
		return Selection{Target: tower}
	}

	if view.Player.OK {
		return Selection{Target: components.Target{Kind: components.TargetPlayer, Entity: view.Player.Entity}}
	}
	return Selection{}
}

// IsDefenseBlockingPath scans path segments in order and returns the first
// defense obstructing one. A segment is obstructed when a ray along it hits
// a defense before any wall, or when a defense sits closer than BlockRadius
// to either end of the segment.
func (ts *TargetSelector) IsDefenseBlockingPath(path pathing.Polyline, view *WorldView) (donburi.Entity, bool) {
	if len(view.Defenses) == 0 {
		return 0, false
	}
	checkSize := cfg.Pathfinding.LOSCheckSize

	var blocker donburi.Entity
	found := false
	path.Segments(func(_ int, a, b gamemath.Vec2) bool {
		area := gamemath.SegmentBounds(a, b, checkSize)
		var candidates []obstacle
		for _, d := range view.Defenses {
			if d.Rect.Intersects(area) {
				candidates = append(candidates, obstacle{Entity: d.Entity, Rect: d.Rect, Tag: tags.ResolvDefense})
			}
		}
		for _, r := range view.Solids {
			if r.Intersects(area) {
				candidates = append(candidates, obstacle{Rect: r, Tag: tags.ResolvSolid})
			}
		}
		if hit, _, ok := marchRay(a, b, candidates); ok && hit.Tag == tags.ResolvDefense {
			blocker, found = hit.Entity, true
			return false
		}

		for _, d := range view.Defenses {
			if gamemath.Distance(d.Position, a) < ts.BlockRadius || gamemath.Distance(d.Position, b) < ts.BlockRadius {
				blocker, found = d.Entity, true
				return false
			}
		}
		return true
	})
	return blocker, found
}

type selectJob struct {
	pos   gamemath.Vec2
	aggro float64
}

// selectAll evaluates jobs, spreading them over worker goroutines when
// configured. Workers only read the view.
func (ts *TargetSelector) selectAll(jobs []selectJob, view *WorldView) []Selection {
	results := make([]Selection, len(jobs))
	if ts.Workers <= 1 || len(jobs) < 2 {
		for i, job := range jobs {
			results[i] = ts.selectTarget(job.pos, job.aggro, view)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(ts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = ts.selectTarget(job.pos, job.aggro, view)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

type pendingTarget struct {
	entry     *donburi.Entry
	selection Selection
	job       int // index into the selection jobs, -1 when forced
}

// UpdateTargeting re-evaluates the target of every agent whose targeting
// deadline has passed. Pre-targeting hooks and forced targets run serially,
// selection may run in parallel, and results are applied serially.
func UpdateTargeting(s *Sim) {
	now := s.Now()

	var due []*donburi.Entry
	for _, e := range s.LiveAgents() {
		if now >= components.Agent.Get(e).NextTargetAt {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return
	}

	pending := make([]pendingTarget, 0, len(due))
	var jobs []selectJob
	for _, e := range due {
		agent := components.Agent.Get(e)
		agent.NextTargetAt = now + cfg.Targeting.Interval

		if b, ok := behaviorOf(e); ok && b.onPreTargeting != nil {
			b.onPreTargeting(s, e)
		}

		ts := components.TargetState.Get(e)
		if !ts.Forced.IsNone() {
			if ts.Forced.Valid(s.World) {
				pending = append(pending, pendingTarget{entry: e, selection: Selection{Target: ts.Forced}, job: -1})
				continue
			}
			ClearForcedTarget(s, e)
		}

		pending = append(pending, pendingTarget{entry: e, job: len(jobs)})
		jobs = append(jobs, selectJob{
			pos:   components.Transform.Get(e).Position,
			aggro: agent.AggroRange,
		})
	}

	if len(jobs) > 0 {
		results := s.Selector.selectAll(jobs, BuildWorldView(s))
		for i := range pending {
			if pending[i].job >= 0 {
				pending[i].selection = results[pending[i].job]
			}
		}
	}

	for _, p := range pending {
		if components.Agent.Get(p.entry).Alive() {
			applyTarget(s, p.entry, p.selection)
		}
	}
}

// applyTarget stores a selection and runs the target-updated side effects:
// speed, destination and the behavior hook. TargetChanged is published only
// when the target actually changed.
func applyTarget(s *Sim, e *donburi.Entry, sel Selection) {
	ts := components.TargetState.Get(e)
	previous := ts.Current
	ts.Current = sel.Target

	if previous != sel.Target {
		events.TargetChanged.Publish(s.World, events.TargetChangedEvent{
			Entity:   e.Entity(),
			Previous: previous,
			Target:   sel.Target,
		})
		if cfg.Debug.LogTargeting {
			log.Printf("[Targeting] Agent %v: %s -> %s", e.Entity(), previous.Kind, sel.Target.Kind)
		}
	}

	agent := components.Agent.Get(e)
	if sel.Target.Kind == components.TargetPlayer {
		agent.Speed = agent.RunSpeed
	} else {
		agent.Speed = agent.WalkSpeed
	}
	refreshDestination(s, e, sel.Path)

	if b, ok := behaviorOf(e); ok && b.onTargetUpdated != nil {
		b.onTargetUpdated(s, e)
	}
}

// ForceTarget pins an agent's target until ClearForcedTarget. Normal
// selection is suppressed while the forced entity stays alive.
func ForceTarget(s *Sim, e *donburi.Entry, target components.Target) {
	ts := components.TargetState.Get(e)
	ts.Forced = target

	override := components.MovementOverride.Get(e)
	if override.Mode != components.OverrideFixedPoint {
		override.Mode = components.OverrideForcedTarget
	}
	if ts.Current != target {
		applyTarget(s, e, Selection{Target: target})
	}
}

// ClearForcedTarget releases a forced target. The next targeting cycle
// selects normally.
func ClearForcedTarget(s *Sim, e *donburi.Entry) {
	components.TargetState.Get(e).Forced = components.Target{}
	override := components.MovementOverride.Get(e)
	if override.Mode == components.OverrideForcedTarget {
		override.Mode = components.OverrideNone
	}
}

// targetPoint returns the position of a live target.
func targetPoint(s *Sim, t components.Target) (gamemath.Vec2, bool) {
	if !t.Valid(s.World) {
		return gamemath.Vec2{}, false
	}
	e := s.World.Entry(t.Entity)
	if !e.HasComponent(components.Transform) {
		return gamemath.Vec2{}, false
	}
	return components.Transform.Get(e).Position, true
}

// targetDistance measures from pos to a target. Structures are measured to
// the closest point of their collision box, the player to its center.
func targetDistance(s *Sim, pos gamemath.Vec2, t components.Target) (float64, bool) {
	center, ok := targetPoint(s, t)
	if !ok {
		return 0, false
	}
	if t.Kind == components.TargetPlayer {
		return gamemath.Distance(pos, center), true
	}
	e := s.World.Entry(t.Entity)
	if e.HasComponent(components.Object) {
		if obj := components.Object.Get(e).Object; obj != nil {
			return objectRect(obj).DistanceTo(pos), true
		}
	}
	return gamemath.Distance(pos, center), true
}
