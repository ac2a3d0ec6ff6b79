// Package elite implements the tactical decision-and-execution engine for
// scripted elite combatants: per-cycle situation analysis, probabilistic
// selection among competing ability strategies, and the telegraph → execute
// state machine with counterplay interruption.
package elite

import "math"

// Tier is a combatant's difficulty rank, 1 (weakest) through 6.
type Tier int

// MinTier and MaxTier bound the valid tier range.
const (
	MinTier Tier = 1
	MaxTier Tier = 6
)

// Clamped returns the tier bounded to [MinTier, MaxTier].
func (t Tier) Clamped() Tier {
	if t < MinTier {
		return MinTier
	}
	if t > MaxTier {
		return MaxTier
	}
	return t
}

// Archetype is a combatant's tactical class tag. It determines the ability
// set (via the catalog) and the heuristic category weighting.
type Archetype string

// Vec3 is a position in world units.
type Vec3 struct {
	X, Y, Z float64
}

// DistanceTo returns the Euclidean distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float64 {
	dx, dy, dz := v.X-o.X, v.Y-o.Y, v.Z-o.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Combatant is the elite NPC executing abilities. The handle carries its
// archetype and tier directly; the engine never consults external metadata.
type Combatant struct {
	// ID uniquely identifies the combatant within the encounter.
	ID string
	// Name is the display name used in warnings and logs.
	Name string
	// Archetype selects the ability set and category weighting.
	Archetype Archetype
	// Tier scales cooldowns, damage, durations, and ranges.
	Tier Tier
	// Position is the combatant's location, used as the combat center.
	Position Vec3
	// CurrentHP and MaxHP track health for desperation heuristics.
	CurrentHP int
	MaxHP     int
}

// HealthFraction returns current health as a fraction of max; 0 if MaxHP <= 0.
func (c *Combatant) HealthFraction() float64 {
	if c.MaxHP <= 0 {
		return 0
	}
	return float64(c.CurrentHP) / float64(c.MaxHP)
}

// IsDead reports whether the combatant has zero or fewer hit points.
func (c *Combatant) IsDead() bool {
	return c.CurrentHP <= 0
}

// Role is a target's perceived combat role, inferred upstream from its gear.
type Role string

// Recognized target roles.
const (
	RoleMelee  Role = "melee"
	RoleRanged Role = "ranged"
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
)

// Target is a human opponent potentially affected by an ability.
type Target struct {
	// ID uniquely identifies the target within the encounter.
	ID string
	// Name is the display name used in warnings.
	Name string
	// Position is the target's location.
	Position Vec3
	// HealthFraction is the target's health in [0, 1].
	HealthFraction float64
	// GearScore is the perceived gear threat, 0–100.
	GearScore int
	// Role is the perceived combat role.
	Role Role
}
