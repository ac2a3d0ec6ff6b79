package elite

// Cataclysm sub-phases, in chain order.
const (
	cataclysmPhaseFlame = iota + 1
	cataclysmPhaseFrost
	cataclysmPhaseShock
	cataclysmPhaseFinale
	cataclysmPhases = cataclysmPhaseFinale
)

// cataclysmPhaseDelayTicks is the countdown between consecutive sub-phases
// (10 ticks ≈ 1 s at the default tick rate).
const cataclysmPhaseDelayTicks = 10

// ElementalCataclysm is the ultimate: three chained elemental waves followed
// by a finale. Only the opening flame wave can be interrupted; after that the
// elements are committed and the chain runs to completion.
type ElementalCataclysm struct {
	def *Definition
}

// NewElementalCataclysm builds the cataclysm strategy.
func NewElementalCataclysm(def *Definition) Strategy {
	return &ElementalCataclysm{def: def}
}

func (u *ElementalCataclysm) Definition() *Definition { return u.def }

func (u *ElementalCataclysm) MeetsPrerequisites(c *Combatant, targets []*Target) bool {
	return len(targets) >= 2
}

// ContextualChance holds the ultimate back in the opening phase and pushes it
// hard once the encounter turns desperate or the pack bunches up.
func (u *ElementalCataclysm) ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64 {
	chance := u.def.BaseChance
	if sit.FavorsUltimate() {
		chance *= 1.5
	}
	if len(sit.Nearby) >= 4 {
		chance *= 1.3
	}
	if sit.Phase == PhaseOpening {
		chance *= 0.5
	}
	return chance
}

func (u *ElementalCataclysm) SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority {
	if sit.Phase == PhaseDesperate {
		return PriorityCritical
	}
	return PriorityHigh
}

func (u *ElementalCataclysm) Telegraph(ctx *CastContext) error {
	warnEndangered(ctx, u.def, ScaledRange(u.def.DangerRadius, ctx.Combatant.Tier))
	return nil
}

// Execute resolves the whole chain back-to-back. The instance drives the
// normal delayed chain through ExecutePhase; this path exists for callers
// that need immediate resolution.
func (u *ElementalCataclysm) Execute(ctx *CastContext) error {
	for phase := cataclysmPhaseFlame; phase <= cataclysmPhaseFinale; phase++ {
		if err := u.ExecutePhase(ctx, phase); err != nil {
			return err
		}
	}
	return nil
}

func (u *ElementalCataclysm) PhaseCount() int { return cataclysmPhases }

func (u *ElementalCataclysm) PhaseDelay(phase int) int { return cataclysmPhaseDelayTicks }

// PhaseInterruptible permits counterplay only against the opening flame wave.
func (u *ElementalCataclysm) PhaseInterruptible(phase int) bool {
	return phase == cataclysmPhaseFlame
}

// ExecutePhase fires one sub-phase: each elemental wave rolls fresh damage
// against everyone still in the danger radius, and the finale doubles down
// with a knockdown.
func (u *ElementalCataclysm) ExecutePhase(ctx *CastContext, phase int) error {
	damage, err := rollScaledDamage(ctx, u.def)
	if err != nil {
		return err
	}

	radius := ScaledRange(u.def.DangerRadius, ctx.Combatant.Tier)
	caught := targetsWithin(ctx.Combatant.Position, ctx.Targets, radius)

	switch phase {
	case cataclysmPhaseFlame:
		for _, t := range caught {
			ctx.Damage.ApplyDamage(t.ID, damage, u.def.ID)
			ctx.Damage.ApplyStatus(t.ID, "scorched", ScaledDuration(30, ctx.Combatant.Tier))
		}
	case cataclysmPhaseFrost:
		for _, t := range caught {
			ctx.Damage.ApplyDamage(t.ID, damage, u.def.ID)
			ctx.Damage.ApplyStatus(t.ID, "frozen", ScaledDuration(20, ctx.Combatant.Tier))
		}
	case cataclysmPhaseShock:
		for _, t := range caught {
			ctx.Damage.ApplyDamage(t.ID, damage, u.def.ID)
			ctx.Damage.ApplyStatus(t.ID, "shocked", ScaledDuration(20, ctx.Combatant.Tier))
		}
	case cataclysmPhaseFinale:
		for _, t := range caught {
			ctx.Damage.ApplyDamage(t.ID, damage*2, u.def.ID)
			ctx.Damage.ApplyStatus(t.ID, "knocked_down", ScaledDuration(15, ctx.Combatant.Tier))
		}
	}
	return nil
}

func (u *ElementalCataclysm) Interruptible() bool { return true }

func (u *ElementalCataclysm) OnInterrupt(ctx *CastContext, interrupter *Target) {
	rewardInterrupter(ctx, u.def, interrupter)
}
