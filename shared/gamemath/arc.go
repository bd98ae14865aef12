package gamemath

import "math"

// ArcHeight returns the sine-shaped height offset at progress p in [0,1].
func ArcHeight(p, peak float64) float64 {
	return math.Sin(Clamp(p, 0, 1)*math.Pi) * peak
}

// ArcPoint interpolates a ground position and a height along a parabolic arc.
func ArcPoint(from, to Vec2, fromH, toH, peak, p float64) (Vec2, float64) {
	p = Clamp(p, 0, 1)
	return Lerp(from, to, p), LerpFloat(fromH, toH, p) + ArcHeight(p, peak)
}

// RingPoints returns count points evenly spaced on a circle.
func RingPoints(center Vec2, count int, radius float64) []Vec2 {
	points := make([]Vec2, 0, count)
	for i := 0; i < count; i++ {
		angle := float64(i) * 2 * math.Pi / float64(count)
		points = append(points, Vec2{
			X: center.X + math.Cos(angle)*radius,
			Y: center.Y + math.Sin(angle)*radius,
		})
	}
	return points
}

// WeightedIndex picks an index from weights using roll in [0,1). It returns
// -1 when no weight is positive.
func WeightedIndex(weights []float64, roll float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	target := roll * total
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		if target < w {
			return i
		}
		target -= w
	}
	return last
}
