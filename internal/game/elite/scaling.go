package elite

import "math"

// Tier scaling constants. Tier 1 is the baseline; each tier above 1 tightens
// cooldowns and amplifies effects.
const (
	// cooldownReductionPerTier shortens cooldowns by 5% per tier above 1,
	// up to 25% at tier 6.
	cooldownReductionPerTier = 0.05
	maxCooldownReduction     = 0.25
	// cooldownFloorFraction is the minimum cooldown as a fraction of base.
	cooldownFloorFraction = 0.5

	// damageBonusPerTier amplifies damage by up to 20% per tier above 1,
	// weighted by the category multiplier.
	damageBonusPerTier = 0.20

	// durationBonusTicksPerTier lengthens effect durations per tier above 1
	// (5 ticks ≈ 0.5s at the default tick rate).
	durationBonusTicksPerTier = 5

	// rangeBonusPerTier widens effective ranges per tier above 1.
	rangeBonusPerTier = 0.5
)

// categoryDamageMultiplier weights the tier damage bonus by category:
// ultimates hit hardest, defensive and utility effects scale gently.
func categoryDamageMultiplier(cat Category) float64 {
	switch cat {
	case CategoryUltimate:
		return 1.5
	case CategoryDefensive, CategoryUtility:
		return 0.7
	default:
		return 1.0
	}
}

// ScaledCooldown returns the tier-scaled cooldown in ticks.
//
// Postcondition: result >= baseTicks/2 and result <= baseTicks; reduction
// never exceeds 25%.
func ScaledCooldown(baseTicks int, tier Tier) int {
	t := tier.Clamped()
	reduction := cooldownReductionPerTier * float64(t-MinTier)
	if reduction > maxCooldownReduction {
		reduction = maxCooldownReduction
	}
	scaled := int(math.Round(float64(baseTicks) * (1.0 - reduction)))
	floor := int(float64(baseTicks) * cooldownFloorFraction)
	if scaled < floor {
		scaled = floor
	}
	return scaled
}

// ScaledDamage returns base damage amplified by tier and category.
//
// Postcondition: result >= base for base >= 0.
func ScaledDamage(base int, tier Tier, cat Category) int {
	t := tier.Clamped()
	mult := 1.0 + damageBonusPerTier*float64(t-MinTier)*categoryDamageMultiplier(cat)
	return int(math.Round(float64(base) * mult))
}

// ScaledDuration returns an effect duration lengthened by tier.
func ScaledDuration(baseTicks int, tier Tier) int {
	t := tier.Clamped()
	return baseTicks + durationBonusTicksPerTier*int(t-MinTier)
}

// ScaledRange returns an effective range widened by tier.
func ScaledRange(base float64, tier Tier) float64 {
	t := tier.Clamped()
	return base + rangeBonusPerTier*float64(t-MinTier)
}
