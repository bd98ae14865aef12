package systems

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/holdout/components"
	"github.com/automoto/holdout/tags"
)

// UpdateDeaths counts down death timers and removes expired entities from
// the world. The tower and the player stay as records of the defeat.
func UpdateDeaths(s *Sim) {
	dt := s.DeltaTime()

	var expired []*donburi.Entry
	for e := range components.Death.Iter(s.World) {
		if e.HasComponent(tags.Tower) || e.HasComponent(tags.Player) {
			continue
		}
		death := components.Death.Get(e)
		death.Timer -= dt
		if death.Timer <= 0 {
			expired = append(expired, e)
		}
	}

	for _, e := range expired {
		removeObject(s, e)
		s.World.Remove(e.Entity())
	}
}
