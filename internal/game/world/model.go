// Package world provides the arena terrain model: a flat floor with volumetric
// features (pools, pillars) sampled by the situation analyzer.
package world

import (
	"fmt"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

// FeatureKind classifies an arena feature's material contribution.
type FeatureKind string

// Recognized feature kinds.
const (
	// KindWaterPool replaces the floor with water inside its footprint.
	KindWaterPool FeatureKind = "water_pool"
	// KindLavaPool replaces the floor with lava inside its footprint.
	KindLavaPool FeatureKind = "lava_pool"
	// KindPillar is solid from the floor up to its height.
	KindPillar FeatureKind = "pillar"
)

// IsValid reports whether k is a recognized feature kind.
func (k FeatureKind) IsValid() bool {
	switch k {
	case KindWaterPool, KindLavaPool, KindPillar:
		return true
	}
	return false
}

// Feature is one axis-aligned terrain feature.
type Feature struct {
	Kind FeatureKind
	// MinX..MaxZ bound the footprint on the floor plane.
	MinX, MaxX float64
	MinZ, MaxZ float64
	// Height is how far above the floor a pillar reaches; ignored for pools.
	Height float64
}

// contains reports whether (x, z) lies inside the footprint.
func (f *Feature) contains(x, z float64) bool {
	return x >= f.MinX && x <= f.MaxX && z >= f.MinZ && z <= f.MaxZ
}

// Validate checks a single feature's invariants.
func (f *Feature) Validate() error {
	if !f.Kind.IsValid() {
		return fmt.Errorf("feature: unknown kind %q", f.Kind)
	}
	if f.MinX > f.MaxX || f.MinZ > f.MaxZ {
		return fmt.Errorf("feature %q: footprint min must not exceed max", f.Kind)
	}
	if f.Kind == KindPillar && f.Height <= 0 {
		return fmt.Errorf("feature %q: pillar height must be > 0", f.Kind)
	}
	return nil
}

// Arena is one combat arena: a flat floor at FloorY with features on it. It is
// read-only after loading and safe for concurrent sampling.
type Arena struct {
	Name     string
	FloorY   float64
	Features []Feature
}

// Validate checks the arena's invariants.
//
// Postcondition: Returns nil iff Name is non-empty and every feature is valid.
func (a *Arena) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("arena: name must not be empty")
	}
	for i := range a.Features {
		if err := a.Features[i].Validate(); err != nil {
			return fmt.Errorf("arena %q: %w", a.Name, err)
		}
	}
	return nil
}

// Sample reports the material at a world position. Below the floor the arena
// is solid except inside pool footprints; above it, air except inside pillar
// volumes.
//
// Sample satisfies elite.TerrainSampler.
func (a *Arena) Sample(x, y, z float64) elite.Material {
	if y < a.FloorY {
		for i := range a.Features {
			f := &a.Features[i]
			if !f.contains(x, z) {
				continue
			}
			switch f.Kind {
			case KindWaterPool:
				return elite.MaterialWater
			case KindLavaPool:
				return elite.MaterialLava
			}
		}
		return elite.MaterialSolid
	}

	for i := range a.Features {
		f := &a.Features[i]
		if f.Kind == KindPillar && f.contains(x, z) && y < a.FloorY+f.Height {
			return elite.MaterialSolid
		}
	}
	return elite.MaterialAir
}
