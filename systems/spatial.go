package systems

import (
	"cmp"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
)

const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16
	pointTolerance   = 0.001
)

// spatialItem indexes an entity by its center point.
type spatialItem struct {
	entity donburi.Entity
	pos    gamemath.Vec2
	bounds rtreego.Rect
}

func (i *spatialItem) Bounds() rtreego.Rect { return i.bounds }

func newSpatialItem(e *donburi.Entry) *spatialItem {
	pos := components.Transform.Get(e).Position
	return &spatialItem{
		entity: e.Entity(),
		pos:    pos,
		bounds: rtreego.Point{pos.X, pos.Y}.ToRect(pointTolerance),
	}
}

// Snapshot is an immutable spatial index of live agents and defenses taken
// at the start of a tick. It is safe for concurrent readers.
type Snapshot struct {
	agents   *rtreego.Rtree
	defenses *rtreego.Rtree
}

// BuildSnapshot indexes every live agent and standing defense in w.
func BuildSnapshot(w donburi.World) *Snapshot {
	var agents, defenses []rtreego.Spatial

	tags.Zombie.Each(w, func(e *donburi.Entry) {
		if components.Agent.Get(e).Alive() {
			agents = append(agents, newSpatialItem(e))
		}
	})
	tags.Defense.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Death) {
			defenses = append(defenses, newSpatialItem(e))
		}
	})

	return &Snapshot{
		agents:   rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, agents...),
		defenses: rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, defenses...),
	}
}

// Agents returns the number of live agents in the snapshot.
func (s *Snapshot) Agents() int { return s.agents.Size() }

// NearestDefense returns the defense whose center is closest to p. When
// accept is non-nil, defenses it rejects are skipped.
func (s *Snapshot) NearestDefense(p gamemath.Vec2, accept func(donburi.Entity) bool) (donburi.Entity, bool) {
	if s.defenses.Size() == 0 {
		return 0, false
	}
	var filters []rtreego.Filter
	if accept != nil {
		filters = append(filters, func(_ []rtreego.Spatial, obj rtreego.Spatial) (bool, bool) {
			return !accept(obj.(*spatialItem).entity), false
		})
	}
	nearest := s.defenses.NearestNeighbors(1, rtreego.Point{p.X, p.Y}, filters...)
	if len(nearest) == 0 || nearest[0] == nil {
		return 0, false
	}
	return nearest[0].(*spatialItem).entity, true
}

// AgentsWithin returns live agents whose center lies within radius of p,
// nearest first.
func (s *Snapshot) AgentsWithin(p gamemath.Vec2, radius float64) []donburi.Entity {
	items := s.agentItemsWithin(p, radius)
	out := make([]donburi.Entity, len(items))
	for i, item := range items {
		out[i] = item.entity
	}
	return out
}

// CountAgentsWithin counts live agents within radius of p, excluding one entity.
func (s *Snapshot) CountAgentsWithin(p gamemath.Vec2, radius float64, exclude donburi.Entity) int {
	n := 0
	for _, item := range s.agentItemsWithin(p, radius) {
		if item.entity != exclude {
			n++
		}
	}
	return n
}

func (s *Snapshot) agentItemsWithin(p gamemath.Vec2, radius float64) []*spatialItem {
	if s.agents.Size() == 0 || radius <= 0 {
		return nil
	}
	box := rtreego.Point{p.X, p.Y}.ToRect(radius)
	var items []*spatialItem
	for _, obj := range s.agents.SearchIntersect(box) {
		item := obj.(*spatialItem)
		if gamemath.Distance(p, item.pos) <= radius {
			items = append(items, item)
		}
	}
	slices.SortFunc(items, func(a, b *spatialItem) int {
		if c := cmp.Compare(gamemath.DistanceSq(p, a.pos), gamemath.DistanceSq(p, b.pos)); c != 0 {
			return c
		}
		return cmp.Compare(a.entity, b.entity)
	})
	return items
}

// sortByEntity orders items by entity so iteration does not depend on
// storage layout.
func sortByEntity[T any](items []T, key func(T) donburi.Entity) {
	slices.SortStableFunc(items, func(a, b T) int { return cmp.Compare(key(a), key(b)) })
}
