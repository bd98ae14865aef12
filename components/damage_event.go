package components

import "github.com/yohamta/donburi"

// DamageEventData queues damage for UpdateCombat. Several sources hitting the
// same entity in one tick accumulate into Amount.
type DamageEventData struct {
	Amount float64
	Source donburi.Entity
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()
