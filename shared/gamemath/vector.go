// Package gamemath holds the pure geometry helpers shared by the simulation.
// Positions live on the ground plane; X is east and Y is south, matching the
// resolv space the agents collide in.
package gamemath

import (
	"math"

	dmath "github.com/yohamta/donburi/features/math"
)

// Vec2 is a ground-plane position or direction.
type Vec2 = dmath.Vec2

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func Add(a, b Vec2) Vec2           { return Vec2{X: a.X + b.X, Y: a.Y + b.Y} }
func Sub(a, b Vec2) Vec2           { return Vec2{X: a.X - b.X, Y: a.Y - b.Y} }
func Scale(a Vec2, s float64) Vec2 { return Vec2{X: a.X * s, Y: a.Y * s} }
func Dot(a, b Vec2) float64        { return a.X*b.X + a.Y*b.Y }
func Length(a Vec2) float64        { return math.Hypot(a.X, a.Y) }

func Distance(a, b Vec2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func DistanceSq(a, b Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

// Normalize returns a unit vector, or the zero vector for zero input.
func Normalize(a Vec2) Vec2 {
	l := Length(a)
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: a.X / l, Y: a.Y / l}
}

// Direction returns the unit vector from one point toward another.
func Direction(from, to Vec2) Vec2 {
	return Normalize(Sub(to, from))
}

func Lerp(a, b Vec2, t float64) Vec2 {
	return Vec2{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func LerpFloat(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Collinear reports whether b lies on the straight line through a and c.
func Collinear(a, b, c Vec2) bool {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	return math.Abs(cross) < 1e-9
}
