package components

import "github.com/yohamta/donburi"

// HealthData is shared by agents and every damage target. Current never
// drops below zero.
type HealthData struct {
	Current float64
	Max     float64
}

func (h *HealthData) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

var Health = donburi.NewComponentType[HealthData]()
