package elite

// strikeReach is the base melee reach of the strike before tier range scaling.
const strikeReach = 4.0

// executeThreshold is the victim health fraction below which the strike gains
// its desperation multiplier.
const executeThreshold = 0.40

// ExecutionerStrike is an offensive single-target ability that hunts the
// weakest reachable victim and hits hardest when that victim is near death.
type ExecutionerStrike struct {
	def *Definition
}

// NewExecutionerStrike builds the executioner strike strategy.
func NewExecutionerStrike(def *Definition) Strategy {
	return &ExecutionerStrike{def: def}
}

func (e *ExecutionerStrike) Definition() *Definition { return e.def }

// victim returns the lowest-health target within reach, or nil.
func (e *ExecutionerStrike) victim(c *Combatant, targets []*Target) *Target {
	reach := ScaledRange(strikeReach, c.Tier)
	var best *Target
	for _, t := range targetsWithin(c.Position, targets, reach) {
		if best == nil || t.HealthFraction < best.HealthFraction {
			best = t
		}
	}
	return best
}

func (e *ExecutionerStrike) MeetsPrerequisites(c *Combatant, targets []*Target) bool {
	return e.victim(c, targets) != nil
}

// ContextualChance stacks multipliers for a wounded victim, an isolated
// victim, and the combatant's own desperation.
func (e *ExecutionerStrike) ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64 {
	chance := e.def.BaseChance

	v := e.victim(c, targets)
	if v == nil {
		return 0
	}
	if v.HealthFraction <= executeThreshold {
		chance *= 1.6
	}
	for _, iso := range sit.Isolated {
		if iso.ID == v.ID {
			chance *= 1.3
			break
		}
	}
	if c.HealthFraction() < 0.30 {
		chance *= 1.2
	}
	return chance
}

func (e *ExecutionerStrike) SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority {
	v := e.victim(c, targets)
	switch {
	case v == nil:
		return PriorityLow
	case v.HealthFraction <= 0.15:
		return PriorityCritical
	case v.HealthFraction <= executeThreshold:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

func (e *ExecutionerStrike) Telegraph(ctx *CastContext) error {
	warnEndangered(ctx, e.def, ScaledRange(e.def.DangerRadius, ctx.Combatant.Tier))
	return nil
}

// Execute strikes the weakest victim still within reach. The victim may have
// escaped during the telegraph; the strike then whiffs without error.
func (e *ExecutionerStrike) Execute(ctx *CastContext) error {
	v := e.victim(ctx.Combatant, ctx.Targets)
	if v == nil {
		return nil
	}

	damage, err := rollScaledDamage(ctx, e.def)
	if err != nil {
		return err
	}
	ctx.Damage.ApplyDamage(v.ID, damage, e.def.ID)
	ctx.Damage.ApplyStatus(v.ID, "bleeding", ScaledDuration(30, ctx.Combatant.Tier))
	return nil
}

func (e *ExecutionerStrike) Interruptible() bool { return true }

func (e *ExecutionerStrike) OnInterrupt(ctx *CastContext, interrupter *Target) {
	rewardInterrupter(ctx, e.def, interrupter)
}
