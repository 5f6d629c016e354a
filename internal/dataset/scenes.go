// Package dataset loads a directory of scene graphs and serializes them in
// bulk, then pairs the encodings with question suites to build prompts.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dsgprompt/internal/dsg"
)

// Scene is one loaded scene graph, keyed by its file name.
type Scene struct {
	Name  string
	Graph *dsg.SceneGraph
}

// LoadDir loads every *.json scene graph in dir (not recursive), sorted by
// file name. An empty directory yields no scenes and no error.
func LoadDir(dir string) ([]Scene, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scene directory %s is not a directory", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list scenes: %w", err)
	}
	sort.Strings(paths)

	scenes := make([]Scene, 0, len(paths))
	for _, path := range paths {
		g, err := dsg.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load scene %s: %w", filepath.Base(path), err)
		}
		scenes = append(scenes, Scene{Name: filepath.Base(path), Graph: g})
	}
	return scenes, nil
}
