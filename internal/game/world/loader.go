package world

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlArenaFile is the top-level YAML structure for arena files.
type yamlArenaFile struct {
	Arena yamlArena `yaml:"arena"`
}

// yamlArena is the YAML representation of an arena.
type yamlArena struct {
	Name     string        `yaml:"name"`
	FloorY   float64       `yaml:"floor_y"`
	Features []yamlFeature `yaml:"features"`
}

// yamlFeature is the YAML representation of one terrain feature.
type yamlFeature struct {
	Kind   string  `yaml:"kind"`
	MinX   float64 `yaml:"min_x"`
	MaxX   float64 `yaml:"max_x"`
	MinZ   float64 `yaml:"min_z"`
	MaxZ   float64 `yaml:"max_z"`
	Height float64 `yaml:"height"`
}

// LoadArenaFromFile reads and validates a single arena YAML file.
//
// Precondition: path must point to a valid YAML arena file.
// Postcondition: Returns a validated Arena or a non-nil error.
func LoadArenaFromFile(path string) (*Arena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading arena file %q: %w", path, err)
	}
	return LoadArenaFromBytes(data)
}

// LoadArenaFromBytes parses and validates an arena from raw YAML.
func LoadArenaFromBytes(data []byte) (*Arena, error) {
	var file yamlArenaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing arena YAML: %w", err)
	}

	arena := &Arena{
		Name:   file.Arena.Name,
		FloorY: file.Arena.FloorY,
	}
	for _, f := range file.Arena.Features {
		arena.Features = append(arena.Features, Feature{
			Kind:   FeatureKind(f.Kind),
			MinX:   f.MinX,
			MaxX:   f.MaxX,
			MinZ:   f.MinZ,
			MaxZ:   f.MaxZ,
			Height: f.Height,
		})
	}

	if err := arena.Validate(); err != nil {
		return nil, err
	}
	return arena, nil
}
