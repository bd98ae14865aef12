package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/automoto/holdout/shared/leveldata"
)

// LoadArenaFile loads a single .tmx arena from disk.
func LoadArenaFile(path string) (*leveldata.Arena, error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	arena, err := leveldata.LoadArena(os.DirFS(dir), name)
	if err != nil {
		return nil, fmt.Errorf("load arena: %w", err)
	}
	return arena, nil
}

// LoadAllArenas loads all .tmx arenas from the levels directory under
// assetsDir, returning them keyed by stem name plus a sorted name list.
func LoadAllArenas(assetsDir string) (map[string]*leveldata.Arena, []string, error) {
	arenas, names, err := leveldata.LoadAllArenas(os.DirFS(assetsDir), "levels")
	if err != nil {
		return nil, nil, fmt.Errorf("load all arenas: %w", err)
	}
	log.Printf("Loaded %d arenas from %s: %v", len(names), assetsDir, names)
	return arenas, names, nil
}
