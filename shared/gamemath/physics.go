package gamemath

// MoveTowards steps from current toward target by at most maxStep and
// reports whether the target was reached.
func MoveTowards(current, target Vec2, maxStep float64) (Vec2, bool) {
	d := Distance(current, target)
	if d <= maxStep || d == 0 {
		return target, true
	}
	return Add(current, Scale(Sub(target, current), maxStep/d)), false
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ScaleForWave returns base scaled by perWave for every wave after the first.
func ScaleForWave(base, perWave float64, wave int) float64 {
	if wave <= 1 {
		return base
	}
	return base * (1 + perWave*float64(wave-1))
}
