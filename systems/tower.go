package systems

import (
	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
)

// UpdateTower refreshes the tower's target list on the scan interval and
// shoots the nearest live agent whenever the tower is off cooldown.
func UpdateTower(s *Sim) {
	e, ok := s.Tower()
	if !ok {
		return
	}
	tower := components.Tower.Get(e)
	now := s.Now()

	if now >= tower.NextScanAt {
		tower.NextScanAt = now + cfg.Tower.ScanInterval
		tower.InRange = tower.InRange[:0]
		if snapshot := s.Snapshot(); snapshot != nil {
			pos := components.Transform.Get(e).Position
			tower.InRange = append(tower.InRange, snapshot.AgentsWithin(pos, tower.AttackRange)...)
		}
	}

	if now < tower.NextShotAt || tower.AttackSpeed <= 0 {
		return
	}
	// Nearest first; skip anything that died since the scan
	for _, entity := range tower.InRange {
		if !s.World.Valid(entity) {
			continue
		}
		target := s.World.Entry(entity)
		if !components.Agent.Get(target).Alive() {
			continue
		}
		QueueDamage(target, tower.Damage, e.Entity())
		tower.NextShotAt = now + 1/tower.AttackSpeed
		tower.Shots++
		return
	}
}
