package elite

// Rush engagement band: closer than the minimum a rush is pointless, farther
// than the maximum the combatant loses its mark mid-dash.
const (
	rushMinDistance = 6.0
	rushMaxDistance = 20.0
)

// ShadowRush is a utility gap-closer that blinks the combatant onto a backline
// target, marking it for the pack.
type ShadowRush struct {
	def *Definition
}

// NewShadowRush builds the shadow rush strategy.
func NewShadowRush(def *Definition) Strategy {
	return &ShadowRush{def: def}
}

func (r *ShadowRush) Definition() *Definition { return r.def }

// mark returns the preferred rush target within the engagement band: the
// farthest healer or ranged target, falling back to the farthest target.
func (r *ShadowRush) mark(c *Combatant, targets []*Target) *Target {
	var best *Target
	bestDist := 0.0
	bestBackline := false
	for _, t := range targets {
		d := c.Position.DistanceTo(t.Position)
		if d < rushMinDistance || d > rushMaxDistance {
			continue
		}
		backline := t.Role == RoleHealer || t.Role == RoleRanged
		if best == nil || (backline && !bestBackline) || (backline == bestBackline && d > bestDist) {
			best, bestDist, bestBackline = t, d, backline
		}
	}
	return best
}

func (r *ShadowRush) MeetsPrerequisites(c *Combatant, targets []*Target) bool {
	return r.mark(c, targets) != nil
}

func (r *ShadowRush) ContextualChance(c *Combatant, targets []*Target, sit *Situation) float64 {
	chance := r.def.BaseChance
	if sit.FavorsMobility() {
		chance *= 1.5
	}

	v := r.mark(c, targets)
	if v == nil {
		return 0
	}
	for _, iso := range sit.Isolated {
		if iso.ID == v.ID {
			chance *= 1.3
			break
		}
	}
	if v.Role == RoleHealer || v.Role == RoleRanged {
		chance *= 1.2
	}
	return chance
}

func (r *ShadowRush) SelectPriority(c *Combatant, targets []*Target, sit *Situation) AbilityPriority {
	if v := r.mark(c, targets); v != nil && v.Role == RoleHealer {
		return PriorityHigh
	}
	return PriorityNormal
}

// Telegraph warns only the mark; the rush endangers nobody else.
func (r *ShadowRush) Telegraph(ctx *CastContext) error {
	v := r.mark(ctx.Combatant, ctx.Targets)
	if v == nil {
		return nil
	}
	ctx.Warnings.Warn([]string{v.ID}, r.def.Warning, r.def.Cue, r.def.TelegraphTicks)
	return nil
}

func (r *ShadowRush) Execute(ctx *CastContext) error {
	v := r.mark(ctx.Combatant, ctx.Targets)
	if v == nil {
		return nil
	}

	damage, err := rollScaledDamage(ctx, r.def)
	if err != nil {
		return err
	}
	ctx.Combatant.Position = v.Position
	ctx.Damage.ApplyDamage(v.ID, damage, r.def.ID)
	ctx.Damage.ApplyStatus(v.ID, "shadow_marked", ScaledDuration(50, ctx.Combatant.Tier))
	return nil
}

func (r *ShadowRush) Interruptible() bool { return true }

func (r *ShadowRush) OnInterrupt(ctx *CastContext, interrupter *Target) {
	rewardInterrupter(ctx, r.def, interrupter)
}
