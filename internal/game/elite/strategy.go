package elite

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/game/dice"
)

// DamageSink applies ability damage and status effects to encounter
// participants. Implementations belong to the surrounding combat layer.
type DamageSink interface {
	// ApplyDamage deals amount damage to the target, attributed to abilityID.
	ApplyDamage(targetID string, amount int, abilityID string)
	// ApplyStatus applies a named status effect for durationTicks.
	ApplyStatus(targetID string, effect string, durationTicks int)
}

// WarningSink broadcasts short-lived telegraph warnings to targets.
type WarningSink interface {
	// Warn delivers text plus an audio/visual cue to the listed targets,
	// valid for durationTicks.
	Warn(targetIDs []string, text, cue string, durationTicks int)
}

// ResolveFunc looks up a live combatant by ID. Injected by the owning loop so
// the engine can detect combatants that despawned mid-activation.
type ResolveFunc func(combatantID string) (*Combatant, bool)

// CastContext carries one activation's snapshot and effect sinks. It is built
// at selection time and owned by the instance until the activation ends.
type CastContext struct {
	Combatant *Combatant
	Targets   []*Target
	Situation *Situation
	Damage    DamageSink
	Warnings  WarningSink
	Roller    *dice.Roller
	Logger    *zap.Logger
}

// Strategy is the per-variant ability contract. Implementations must keep
// MeetsPrerequisites, ContextualChance, and SelectPriority cheap and free of
// side effects; all effects happen in Telegraph and Execute.
type Strategy interface {
	// Definition returns the static catalog entry for this ability.
	Definition() *Definition
	// MeetsPrerequisites is the hard gate: target counts, distance bands,
	// and similar cheap checks.
	MeetsPrerequisites(c *Combatant, targets []*Target) bool
	// ContextualChance adjusts the base trigger probability using the
	// ability's own heuristics over the situation snapshot.
	ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64
	// SelectPriority is the primary selection key among eligible abilities.
	SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority
	// Telegraph starts the warning sequence. Every target inside the danger
	// radius must receive a time-bounded warning.
	Telegraph(ctx *CastContext) error
	// Execute fires the effect once the telegraph elapses uninterrupted.
	Execute(ctx *CastContext) error
	// Interruptible reports whether counterplay during Charging cancels
	// the activation.
	Interruptible() bool
	// OnInterrupt rewards the interrupter after a successful cancel.
	OnInterrupt(ctx *CastContext, interrupter *Target)
}

// Phased is implemented by multi-phase abilities whose execution chains
// further delayed sub-phases after the telegraph.
type Phased interface {
	Strategy
	// PhaseCount is the total number of sub-phases including the finale.
	PhaseCount() int
	// ExecutePhase fires sub-phase phase (1-based).
	ExecutePhase(ctx *CastContext, phase int) error
	// PhaseDelay is the countdown in ticks between phase and phase+1.
	PhaseDelay(phase int) int
	// PhaseInterruptible reports whether counterplay during the given
	// sub-phase cancels the rest of the chain.
	PhaseInterruptible(phase int) bool
}

// targetsWithin returns the targets within radius of center.
func targetsWithin(center Vec3, targets []*Target, radius float64) []*Target {
	var out []*Target
	for _, t := range targets {
		if center.DistanceTo(t.Position) <= radius {
			out = append(out, t)
		}
	}
	return out
}

// warnEndangered broadcasts the definition's warning to every target within
// radius of the combatant, bounded to the telegraph window.
func warnEndangered(ctx *CastContext, def *Definition, radius float64) {
	endangered := targetsWithin(ctx.Combatant.Position, ctx.Targets, radius)
	if len(endangered) == 0 {
		return
	}
	ids := make([]string, len(endangered))
	for i, t := range endangered {
		ids[i] = t.ID
	}
	ctx.Warnings.Warn(ids, def.Warning, def.Cue, def.TelegraphTicks)
}

// rollScaledDamage rolls the definition's damage expression and applies the
// tier/category damage scaling.
//
// Precondition: def.Damage must be non-empty.
func rollScaledDamage(ctx *CastContext, def *Definition) (int, error) {
	result, err := ctx.Roller.RollExpr(def.Damage)
	if err != nil {
		return 0, fmt.Errorf("ability %q damage roll: %w", def.ID, err)
	}
	return ScaledDamage(result.Total(), ctx.Combatant.Tier, def.Category), nil
}

// interruptRewardTicks is the duration of the status granted to a successful
// interrupter.
const interruptRewardTicks = 40

// rewardInterrupter grants the counterplay bonus status.
func rewardInterrupter(ctx *CastContext, def *Definition, interrupter *Target) {
	if interrupter == nil {
		return
	}
	ctx.Damage.ApplyStatus(interrupter.ID, "counter_momentum", ScaledDuration(interruptRewardTicks, ctx.Combatant.Tier))
	ctx.Logger.Debug("ability interrupted",
		zap.String("ability", def.ID),
		zap.String("combatant", ctx.Combatant.ID),
		zap.String("interrupter", interrupter.ID),
	)
}
