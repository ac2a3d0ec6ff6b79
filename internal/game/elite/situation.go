package elite

import "sort"

// Terrain classifies the ground around the combat center.
type Terrain int

// Terrain classes, from sampling the volume around the combat center.
const (
	TerrainOpen Terrain = iota
	TerrainConfined
	TerrainWater
	TerrainLava
	TerrainMixed
)

// String returns the lowercase terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainOpen:
		return "open"
	case TerrainConfined:
		return "confined"
	case TerrainWater:
		return "water"
	case TerrainLava:
		return "lava"
	default:
		return "mixed"
	}
}

// Phase classifies how far along the encounter is.
type Phase int

// Encounter phases, derived from target count and aggregate health.
const (
	PhaseOpening Phase = iota
	PhaseMidFight
	PhaseDesperate
	PhaseCleanup
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseMidFight:
		return "midfight"
	case PhaseDesperate:
		return "desperate"
	default:
		return "cleanup"
	}
}

// Material is one sampled block of the world volume.
type Material int

// Materials reported by a TerrainSampler.
const (
	MaterialAir Material = iota
	MaterialSolid
	MaterialWater
	MaterialLava
)

// TerrainSampler reports the material at a world position. A nil sampler
// degrades terrain classification to TerrainMixed.
type TerrainSampler func(x, y, z float64) Material

// Tactical thresholds shared by the analyzer and the ability variants.
const (
	// NearbyRadius bounds the "nearby" target subset.
	NearbyRadius = 8.0
	// IsolationRadius is the minimum gap to the closest other target for a
	// target to count as isolated.
	IsolationRadius = 5.0

	// Safe defaults used when the target list is empty.
	defaultAvgDistance    = 10.0
	defaultAvgHealth      = 1.0
	terrainSampleStep     = 2.0
	terrainSampleRadius   = 8.0
	terrainSampleVertical = 2.0
)

// Situation is the immutable tactical snapshot built once per evaluation
// cycle. It is owned by that cycle and never mutated after construction.
type Situation struct {
	// Center is the combat center the snapshot was built around.
	Center Vec3
	// Targets is the full target list for the cycle.
	Targets []*Target
	// Nearby holds targets within NearbyRadius of the center.
	Nearby []*Target
	// Isolated holds targets with no other target within IsolationRadius.
	Isolated []*Target
	// Terrain is the sampled terrain class around the center.
	Terrain Terrain
	// Phase is the derived encounter phase.
	Phase Phase
	// AvgHealthFraction is the mean target health, defaulting to 1.0 when
	// no targets exist.
	AvgHealthFraction float64
	// AvgDistance is the mean target distance from the center, defaulting
	// to 10.0 when no targets exist.
	AvgDistance float64
	// Role-presence flags over the full target list.
	HealerPresent bool
	TankPresent   bool
	RangedPresent bool
}

// Analyzer builds Situation snapshots. It is read-only after construction and
// safe for concurrent use.
type Analyzer struct {
	sampler TerrainSampler
	bonuses map[Archetype]map[Category]float64
}

// NewAnalyzer creates an Analyzer. sampler may be nil, in which case terrain
// is always classified as TerrainMixed.
func NewAnalyzer(sampler TerrainSampler) *Analyzer {
	return &Analyzer{
		sampler: sampler,
		bonuses: defaultCategoryBonuses(),
	}
}

// defaultCategoryBonuses is the archetype × category weighting table. Absent
// pairs default to 1.0.
func defaultCategoryBonuses() map[Archetype]map[Category]float64 {
	return map[Archetype]map[Category]float64{
		"brute": {
			CategoryOffensive: 1.0,
			CategoryDefensive: 0.9,
			CategoryUltimate:  1.1,
		},
		"reaver": {
			CategoryOffensive: 1.2,
			CategoryUtility:   1.1,
		},
		"warden": {
			CategoryDefensive: 1.3,
			CategoryOffensive: 0.9,
		},
		"arcanist": {
			CategoryUltimate: 1.2,
			CategoryUtility:  1.1,
		},
	}
}

// CategoryBonus returns the archetype's weighting for an ability category.
//
// Postcondition: Returns 1.0 for any unknown archetype or category.
func (a *Analyzer) CategoryBonus(arch Archetype, cat Category) float64 {
	if row, ok := a.bonuses[arch]; ok {
		if b, ok := row[cat]; ok {
			return b
		}
	}
	return 1.0
}

// Analyze builds a Situation snapshot for one evaluation cycle.
//
// Precondition: none — targets may be nil or empty.
// Postcondition: Returns a non-nil Situation with safe defaults when targets
// is empty (AvgDistance 10.0, AvgHealthFraction 1.0, PhaseOpening). Never
// panics and never divides by zero.
func (a *Analyzer) Analyze(center Vec3, targets []*Target, arch Archetype) *Situation {
	s := &Situation{
		Center:            center,
		Targets:           targets,
		Terrain:           a.classifyTerrain(center),
		AvgHealthFraction: defaultAvgHealth,
		AvgDistance:       defaultAvgDistance,
	}

	if len(targets) > 0 {
		var healthSum, distSum float64
		for _, t := range targets {
			healthSum += t.HealthFraction
			distSum += center.DistanceTo(t.Position)

			if center.DistanceTo(t.Position) <= NearbyRadius {
				s.Nearby = append(s.Nearby, t)
			}
			if isIsolated(t, targets) {
				s.Isolated = append(s.Isolated, t)
			}

			switch t.Role {
			case RoleHealer:
				s.HealerPresent = true
			case RoleTank:
				s.TankPresent = true
			case RoleRanged:
				s.RangedPresent = true
			}
		}
		s.AvgHealthFraction = healthSum / float64(len(targets))
		s.AvgDistance = distSum / float64(len(targets))
	}

	s.Phase = derivePhase(len(targets), s.AvgHealthFraction)
	return s
}

// isIsolated reports whether t has no other target within IsolationRadius.
func isIsolated(t *Target, all []*Target) bool {
	for _, other := range all {
		if other == t {
			continue
		}
		if t.Position.DistanceTo(other.Position) <= IsolationRadius {
			return false
		}
	}
	return true
}

// derivePhase maps target count and aggregate health onto an encounter phase.
// Fewer targets at low health bias toward the finishing phases.
func derivePhase(count int, avgHealth float64) Phase {
	switch {
	case count <= 2 && avgHealth <= 0.15:
		return PhaseCleanup
	case avgHealth <= 0.40:
		return PhaseDesperate
	case avgHealth >= 0.75:
		return PhaseOpening
	default:
		return PhaseMidFight
	}
}

// classifyTerrain samples a fixed volume around center and classifies it by
// solid/air/liquid ratios.
func (a *Analyzer) classifyTerrain(center Vec3) Terrain {
	if a.sampler == nil {
		return TerrainMixed
	}

	var total, solid, water, lava int
	for dx := -terrainSampleRadius; dx <= terrainSampleRadius; dx += terrainSampleStep {
		for dy := -terrainSampleVertical; dy <= terrainSampleVertical; dy++ {
			for dz := -terrainSampleRadius; dz <= terrainSampleRadius; dz += terrainSampleStep {
				total++
				switch a.sampler(center.X+dx, center.Y+dy, center.Z+dz) {
				case MaterialSolid:
					solid++
				case MaterialWater:
					water++
				case MaterialLava:
					lava++
				}
			}
		}
	}
	if total == 0 {
		return TerrainMixed
	}

	solidRatio := float64(solid) / float64(total)
	waterRatio := float64(water) / float64(total)
	lavaRatio := float64(lava) / float64(total)

	switch {
	case lavaRatio > 0.02:
		return TerrainLava
	case waterRatio > 0.25:
		return TerrainWater
	case solidRatio > 0.45:
		return TerrainConfined
	case solidRatio < 0.20:
		return TerrainOpen
	default:
		return TerrainMixed
	}
}

// FavorsAreaDamage reports whether grouped targets make area abilities
// attractive this cycle.
func (s *Situation) FavorsAreaDamage() bool {
	return len(s.Nearby) >= 3
}

// FavorsSingleTarget reports whether an isolated or sparse target set favors
// single-target strikes.
func (s *Situation) FavorsSingleTarget() bool {
	return len(s.Isolated) > 0 || len(s.Targets) <= 2
}

// FavorsDefense reports whether the combatant's own health makes defensive
// abilities attractive.
func (s *Situation) FavorsDefense(selfHealth float64) bool {
	return selfHealth <= 0.35 || (selfHealth <= 0.6 && len(s.Nearby) >= 4)
}

// FavorsMobility reports whether the target spread favors gap-closers.
func (s *Situation) FavorsMobility() bool {
	return s.AvgDistance > 6.0
}

// FavorsUltimate reports whether the encounter state justifies an ultimate.
func (s *Situation) FavorsUltimate() bool {
	return s.Phase == PhaseDesperate || len(s.Nearby) >= 5
}

// PriorityTargets returns the targets ranked by tactical value: isolation,
// low health, perceived gear threat, and proximity to the center.
//
// Postcondition: Returns a new slice; s.Targets is not reordered. Empty input
// yields an empty slice.
func (s *Situation) PriorityTargets() []*Target {
	ranked := make([]*Target, len(s.Targets))
	copy(ranked, s.Targets)

	isolated := make(map[*Target]bool, len(s.Isolated))
	for _, t := range s.Isolated {
		isolated[t] = true
	}

	score := func(t *Target) float64 {
		v := 0.0
		if isolated[t] {
			v += 2.0
		}
		v += (1.0 - t.HealthFraction) * 1.5
		v += float64(t.GearScore) / 100.0
		if d := s.Center.DistanceTo(t.Position); d < NearbyRadius {
			v += (NearbyRadius - d) / NearbyRadius * 0.5
		}
		return v
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return score(ranked[i]) > score(ranked[j])
	})
	return ranked
}
