package gamemath

import "math"

// Rect is an axis-aligned box given by its top-left corner and size.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ClosestPoint returns the point of r nearest to p.
func (r Rect) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, r.X, r.X+r.W),
		Y: Clamp(p.Y, r.Y, r.Y+r.H),
	}
}

// DistanceTo returns the distance from p to the nearest point of r.
func (r Rect) DistanceTo(p Vec2) float64 {
	return Distance(p, r.ClosestPoint(p))
}

// OverlapsBox reports whether a square of half-size h centered on p
// intersects r.
func (r Rect) OverlapsBox(p Vec2, h float64) bool {
	return p.X+h > r.X && p.X-h < r.X+r.W &&
		p.Y+h > r.Y && p.Y-h < r.Y+r.H
}

// SegmentBounds returns the box spanned by a segment grown by pad.
func SegmentBounds(a, b Vec2, pad float64) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{X: minX - pad, Y: minY - pad, W: maxX - minX + 2*pad, H: maxY - minY + 2*pad}
}

// Intersects reports whether two boxes overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}
