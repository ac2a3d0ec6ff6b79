package elite

// Grouping thresholds for area damage. Targets packed inside the tight radius
// make the slam dramatically more attractive.
const (
	slamTightRadius    = 6.0
	slamTightGroupMult = 2.0
	slamLooseGroupMult = 1.5
)

// GroundSlam is an offensive area ability: a telegraphed shockwave around the
// combatant that damages and staggers everything in the danger radius.
type GroundSlam struct {
	def *Definition
}

// NewGroundSlam builds the ground slam strategy around its catalog entry.
func NewGroundSlam(def *Definition) Strategy {
	return &GroundSlam{def: def}
}

func (g *GroundSlam) Definition() *Definition { return g.def }

// MeetsPrerequisites requires at least two targets inside the tier-scaled
// danger radius; a slam against one target wastes the cooldown.
func (g *GroundSlam) MeetsPrerequisites(c *Combatant, targets []*Target) bool {
	radius := ScaledRange(g.def.DangerRadius, c.Tier)
	return len(targetsWithin(c.Position, targets, radius)) >= 2
}

// ContextualChance boosts the base chance for tightly grouped targets and for
// open ground, and dampens it in confined spaces where allies block the wave.
func (g *GroundSlam) ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64 {
	chance := g.def.BaseChance

	switch tight := len(targetsWithin(c.Position, targets, slamTightRadius)); {
	case tight >= 4:
		chance *= slamTightGroupMult
	case tight == 3:
		chance *= slamLooseGroupMult
	}

	switch sit.Terrain {
	case TerrainOpen:
		chance *= 1.4
	case TerrainConfined:
		chance *= 0.8
	}
	return chance
}

func (g *GroundSlam) SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority {
	if sit.FavorsAreaDamage() {
		return PriorityHigh
	}
	return PriorityNormal
}

func (g *GroundSlam) Telegraph(ctx *CastContext) error {
	warnEndangered(ctx, g.def, ScaledRange(g.def.DangerRadius, ctx.Combatant.Tier))
	return nil
}

// Execute rolls the slam damage once and applies it to every target still
// inside the danger radius, staggering them briefly.
func (g *GroundSlam) Execute(ctx *CastContext) error {
	damage, err := rollScaledDamage(ctx, g.def)
	if err != nil {
		return err
	}

	radius := ScaledRange(g.def.DangerRadius, ctx.Combatant.Tier)
	for _, t := range targetsWithin(ctx.Combatant.Position, ctx.Targets, radius) {
		ctx.Damage.ApplyDamage(t.ID, damage, g.def.ID)
		ctx.Damage.ApplyStatus(t.ID, "staggered", ScaledDuration(10, ctx.Combatant.Tier))
	}
	return nil
}

func (g *GroundSlam) Interruptible() bool { return true }

func (g *GroundSlam) OnInterrupt(ctx *CastContext, interrupter *Target) {
	rewardInterrupter(ctx, g.def, interrupter)
}
