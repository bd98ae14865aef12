package tags

import "github.com/yohamta/donburi"

var (
	Zombie     = donburi.NewTag().SetName("Zombie")
	Player     = donburi.NewTag().SetName("Player")
	Tower      = donburi.NewTag().SetName("Tower")
	Defense    = donburi.NewTag().SetName("Defense")
	Wall       = donburi.NewTag().SetName("Wall")
	Ground     = donburi.NewTag().SetName("Ground")
	Projectile = donburi.NewTag().SetName("Projectile")
	Puddle     = donburi.NewTag().SetName("Puddle")
)

// Resolv tags for collision and ray tests
const (
	ResolvSolid   = "solid"
	ResolvDefense = "defense"
	ResolvTower   = "tower"
	ResolvPlayer  = "Player"
	ResolvZombie  = "Zombie"
	ResolvGround  = "ground"
)
