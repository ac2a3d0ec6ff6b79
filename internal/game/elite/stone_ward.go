package elite

// wardThreshold is the own-health fraction above which the ward is pointless.
const wardThreshold = 0.60

// wardBaseTicks is the base shield duration before tier scaling.
const wardBaseTicks = 100

// StoneWard is a defensive self-shield. Once the stones start rising the cast
// cannot be interrupted; counterplay is to burst the shield down afterward.
type StoneWard struct {
	def *Definition
}

// NewStoneWard builds the stone ward strategy.
func NewStoneWard(def *Definition) Strategy {
	return &StoneWard{def: def}
}

func (w *StoneWard) Definition() *Definition { return w.def }

func (w *StoneWard) MeetsPrerequisites(c *Combatant, targets []*Target) bool {
	return c.HealthFraction() <= wardThreshold
}

// ContextualChance rises sharply as the combatant's own health falls and when
// the pack presses in close.
func (w *StoneWard) ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64 {
	chance := w.def.BaseChance
	switch {
	case c.HealthFraction() <= 0.35:
		chance *= 1.8
	case sit.FavorsDefense(c.HealthFraction()):
		chance *= 1.4
	}
	return chance
}

func (w *StoneWard) SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority {
	switch {
	case c.HealthFraction() <= 0.25:
		return PriorityCritical
	case c.HealthFraction() <= 0.45:
		return PriorityHigh
	default:
		return PriorityNormal
	}
}

// Telegraph still warns nearby targets so they can reposition or save burst
// cooldowns, even though the ward itself deals no damage.
func (w *StoneWard) Telegraph(ctx *CastContext) error {
	warnEndangered(ctx, w.def, ScaledRange(w.def.DangerRadius, ctx.Combatant.Tier))
	return nil
}

func (w *StoneWard) Execute(ctx *CastContext) error {
	ctx.Damage.ApplyStatus(ctx.Combatant.ID, "stone_ward", ScaledDuration(wardBaseTicks, ctx.Combatant.Tier))
	return nil
}

func (w *StoneWard) Interruptible() bool { return false }

func (w *StoneWard) OnInterrupt(ctx *CastContext, interrupter *Target) {}
