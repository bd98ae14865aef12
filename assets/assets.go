// Package assets embeds the bundled arenas and wave plans.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/holdout/config"
	"github.com/automoto/holdout/shared/leveldata"
)

var (
	//go:embed levels/*.tmx
	levelFS embed.FS

	//go:embed plans/*.yaml
	planFS embed.FS
)

// LevelsFS exposes the embedded levels directory.
func LevelsFS() fs.FS { return levelFS }

// LoadArena loads a bundled arena by stem name, e.g. "courtyard".
func LoadArena(name string) (*leveldata.Arena, error) {
	return leveldata.LoadArena(levelFS, path.Join("levels", name+".tmx"))
}

// LoadAllArenas loads every bundled arena keyed by stem name.
func LoadAllArenas() (map[string]*leveldata.Arena, []string, error) {
	return leveldata.LoadAllArenas(levelFS, "levels")
}

// LoadPlan loads a bundled wave plan by stem name, e.g. "default".
func LoadPlan(name string) (*config.WavePlan, error) {
	return config.LoadWavePlanFS(planFS, path.Join("plans", name+".yaml"))
}

// PlanNames lists the bundled wave plans.
func PlanNames() ([]string, error) {
	matches, err := fs.Glob(planFS, "plans/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob plans: %w", err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}
