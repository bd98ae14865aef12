// Package pathing finds routes across the arena. The simulation only sees
// the Provider interface; NavGrid is the default implementation.
package pathing

import "github.com/automoto/holdout/shared/gamemath"

// Polyline is an ordered list of path corners from start to goal.
type Polyline []gamemath.Vec2

// Segments calls fn for each consecutive pair of corners, in path order,
// until fn returns false.
func (p Polyline) Segments(fn func(i int, a, b gamemath.Vec2) bool) {
	for i := 0; i+1 < len(p); i++ {
		if !fn(i, p[i], p[i+1]) {
			return
		}
	}
}

// Length returns the summed length of every segment.
func (p Polyline) Length() float64 {
	total := 0.0
	p.Segments(func(_ int, a, b gamemath.Vec2) bool {
		total += gamemath.Distance(a, b)
		return true
	})
	return total
}

// Provider returns a path between two points, or false when none exists.
// Implementations must be safe for concurrent FindPath calls.
type Provider interface {
	FindPath(from, to gamemath.Vec2) (Polyline, bool)
}

// Direct is a Provider for open arenas: every path is a straight line.
type Direct struct{}

func (Direct) FindPath(from, to gamemath.Vec2) (Polyline, bool) {
	return Polyline{from, to}, true
}

// Func adapts a function to Provider.
type Func func(from, to gamemath.Vec2) (Polyline, bool)

func (f Func) FindPath(from, to gamemath.Vec2) (Polyline, bool) {
	return f(from, to)
}
