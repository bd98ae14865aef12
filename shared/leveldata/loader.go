package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"

	"github.com/automoto/holdout/shared/gamemath"
)

// Object group names read from the map
const (
	GroupWalls       = "Walls"
	GroupGround      = "Ground"
	GroupDefenses    = "Defenses"
	GroupSpawnPoints = "SpawnPoints"
	GroupTower       = "Tower"
	GroupPlayer      = "Player"
)

// LoadArena parses a TMX file into an Arena. One tile is one world unit, so
// pixel coordinates are divided by the tile width. It takes an fs.FS so
// callers can pass embed.FS or os.DirFS.
func LoadArena(fsys fs.FS, tmxPath string) (*Arena, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: invalid tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	unitX := float64(levelMap.TileWidth)
	unitY := float64(levelMap.TileHeight)
	toRect := func(o *tiled.Object) gamemath.Rect {
		return gamemath.Rect{X: o.X / unitX, Y: o.Y / unitY, W: o.Width / unitX, H: o.Height / unitY}
	}
	toPoint := func(o *tiled.Object) gamemath.Vec2 {
		return toRect(o).Center()
	}

	arena := &Arena{
		Name:   strings.TrimSuffix(filepath.Base(tmxPath), filepath.Ext(tmxPath)),
		Width:  float64(levelMap.Width),
		Height: float64(levelMap.Height),
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case GroupWalls, GroupGround:
			for _, o := range og.Objects {
				block := Block{Rect: toRect(o), Height: propFloat(o.Properties, "height", 0)}
				if og.Name == GroupWalls {
					arena.Walls = append(arena.Walls, block)
				} else {
					arena.Ground = append(arena.Ground, block)
				}
			}
		case GroupDefenses:
			for _, o := range og.Objects {
				kind := o.Properties.GetString("kind")
				if kind == "" {
					kind = "barricade"
				}
				arena.Defenses = append(arena.Defenses, DefenseSpawn{
					Rect:   toRect(o),
					Kind:   kind,
					Height: propFloat(o.Properties, "height", 0),
					Health: propFloat(o.Properties, "health", 0),
				})
			}
		case GroupSpawnPoints:
			type indexed struct {
				index int
				point gamemath.Vec2
			}
			points := make([]indexed, 0, len(og.Objects))
			for _, o := range og.Objects {
				points = append(points, indexed{index: o.Properties.GetInt("spawnIndex"), point: toPoint(o)})
			}
			// Stable order so seeded allocation is reproducible
			sort.SliceStable(points, func(i, j int) bool { return points[i].index < points[j].index })
			for _, p := range points {
				arena.SpawnPoints = append(arena.SpawnPoints, p.point)
			}
		case GroupTower:
			if len(og.Objects) > 0 {
				p := toPoint(og.Objects[0])
				arena.Tower = &p
			}
		case GroupPlayer:
			if len(og.Objects) > 0 {
				p := toPoint(og.Objects[0])
				arena.Player = &p
			}
		}
	}

	return arena, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*Arena, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*Arena, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		arena, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		arenas[arena.Name] = arena
		names = append(names, arena.Name)
	}

	sort.Strings(names)
	return arenas, names, nil
}

func propFloat(props tiled.Properties, name string, fallback float64) float64 {
	raw := props.GetString(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
