package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/systems/factory"
)

func TestTowerShootsNearestAgent(t *testing.T) {
	s, _ := newTestSim(t, nil)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))
	near := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(64, 74), 1)
	far := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(64, 77), 1)

	run(s, step)
	data := components.Tower.Get(tower)
	assert.Equal(t, 1, data.Shots)
	assert.Equal(t, components.Health.Get(near).Max-cfg.Tower.Damage, components.Health.Get(near).Current)
	assert.Equal(t, components.Health.Get(far).Max, components.Health.Get(far).Current)
	assert.Equal(t, s.Now()+1/cfg.Tower.AttackSpeed, data.NextShotAt)
}

func TestTowerIgnoresAgentsOutOfRange(t *testing.T) {
	s, _ := newTestSim(t, nil)
	tower := factory.CreateTower(s.World, gamemath.V(64, 64))
	e := factory.CreateZombie(s.World, cfg.Shambler, gamemath.V(64, 64+cfg.Tower.AttackRange+5), 1)

	run(s, step)
	assert.Zero(t, components.Tower.Get(tower).Shots)
	assert.Equal(t, components.Health.Get(e).Max, components.Health.Get(e).Current)
}
