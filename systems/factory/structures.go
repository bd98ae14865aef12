package factory

import (
	"github.com/automoto/holdout/archetypes"
	"github.com/automoto/holdout/components"
	cfg "github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/gamemath"
	"github.com/automoto/holdout/tags"
	"github.com/yohamta/donburi"
)

// CreateTower places the objective. Its collision box is a square of
// cfg.Tower.Size centered on pos.
func CreateTower(w donburi.World, pos gamemath.Vec2) *donburi.Entry {
	tower := archetypes.Tower.Spawn(w)

	obj := newBox(pos.X, pos.Y, cfg.Tower.Size, cfg.Tower.Size, tags.ResolvTower)
	addObject(w, tower, obj)

	components.Tower.SetValue(tower, components.TowerData{
		AttackRange: cfg.Tower.AttackRange,
		Damage:      cfg.Tower.Damage,
		AttackSpeed: cfg.Tower.AttackSpeed,
	})
	components.Health.SetValue(tower, components.HealthData{
		Current: cfg.Tower.Health,
		Max:     cfg.Tower.Health,
	})
	components.Transform.SetValue(tower, components.TransformData{Position: pos})
	components.Obstacle.SetValue(tower, components.ObstacleData{Height: DefaultWallHeight})

	return tower
}

func CreatePlayer(w donburi.World, pos, facing gamemath.Vec2) *donburi.Entry {
	player := archetypes.Player.Spawn(w)

	obj := newBox(pos.X, pos.Y, cfg.Player.Size, cfg.Player.Size, tags.ResolvPlayer)
	addObject(w, player, obj)

	facing = gamemath.Normalize(facing)
	components.Player.SetValue(player, components.PlayerData{Facing: facing})
	components.Health.SetValue(player, components.HealthData{
		Current: cfg.Player.Health,
		Max:     cfg.Player.Health,
	})
	components.Transform.SetValue(player, components.TransformData{Position: pos, Facing: facing})

	return player
}

// CreateDefense places a defense occupying r. Zero height or health use the
// configured defaults.
func CreateDefense(w donburi.World, r gamemath.Rect, kind string, height, health float64) *donburi.Entry {
	defense := archetypes.Defense.Spawn(w)
	if kind == "" {
		kind = "barricade"
	}
	if height <= 0 {
		height = cfg.Defense.Height
	}
	if health <= 0 {
		health = cfg.Defense.Health
	}

	center := r.Center()
	obj := newBox(center.X, center.Y, r.W, r.H, tags.ResolvDefense)
	addObject(w, defense, obj)

	components.Defense.SetValue(defense, components.DefenseData{Kind: kind})
	components.Health.SetValue(defense, components.HealthData{Current: health, Max: health})
	components.Transform.SetValue(defense, components.TransformData{Position: center})
	components.Obstacle.SetValue(defense, components.ObstacleData{Height: height})

	return defense
}

// CreateDefenseAt places a defense of the configured default size centered on pos.
func CreateDefenseAt(w donburi.World, pos gamemath.Vec2) *donburi.Entry {
	r := gamemath.Rect{
		X: pos.X - cfg.Defense.Width/2,
		Y: pos.Y - cfg.Defense.Depth/2,
		W: cfg.Defense.Width,
		H: cfg.Defense.Depth,
	}
	return CreateDefense(w, r, "", 0, 0)
}
