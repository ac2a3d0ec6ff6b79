package elite

import (
	"fmt"

	"github.com/google/uuid"
)

// executeWindowTicks is the short fixed post-fire window before an instance
// returns to Idle.
const executeWindowTicks = 5

// Instance is a per-combatant clone of an ability definition holding its
// mutable runtime state. Each instance is owned exclusively by one
// combatant's registry entry and holds at most one outstanding
// delayed-execution chain at a time.
//
// Delays are explicit countdown fields advanced by Step, never wall-clock
// timers, so the owning loop (and tests) control time deterministically.
type Instance struct {
	id       string
	strategy Strategy

	state     AbilityState
	countdown int
	// phase is the 1-based current sub-phase of a Phased chain; 0 otherwise.
	phase        int
	lastUsedTick int64
	cast         *CastContext
}

// NewInstance clones a fresh runtime instance around strategy.
//
// Precondition: strategy must be non-nil.
// Postcondition: Returns an Idle instance that has never been used.
func NewInstance(strategy Strategy) *Instance {
	return &Instance{
		id:           uuid.NewString(),
		strategy:     strategy,
		state:        StateIdle,
		lastUsedTick: -1,
	}
}

// ID returns the unique instance clone ID.
func (i *Instance) ID() string { return i.id }

// State returns the current lifecycle state.
func (i *Instance) State() AbilityState { return i.state }

// Strategy returns the wrapped ability strategy.
func (i *Instance) Strategy() Strategy { return i.strategy }

// Definition returns the static catalog entry.
func (i *Instance) Definition() *Definition { return i.strategy.Definition() }

// Active reports whether an activation is in flight (Charging or Executing).
func (i *Instance) Active() bool { return i.state != StateIdle }

// LastUsedTick returns the tick of the most recent activation, or -1.
func (i *Instance) LastUsedTick() int64 { return i.lastUsedTick }

// CanUse reports whether the instance may be selected this cycle: Idle, off
// its tier-scaled cooldown, and passing the variant's hard prerequisites.
//
// Postcondition: side-effect-free.
func (i *Instance) CanUse(now int64, c *Combatant, targets []*Target) bool {
	if i.state != StateIdle {
		return false
	}
	if i.lastUsedTick >= 0 {
		cooldown := int64(ScaledCooldown(i.Definition().CooldownTicks, c.Tier))
		if now-i.lastUsedTick < cooldown {
			return false
		}
	}
	return i.strategy.MeetsPrerequisites(c, targets)
}

// BeginTelegraph starts the activation: transitions to Charging, records the
// cooldown timestamp, arms the telegraph countdown, and runs the variant's
// warning sequence.
//
// The cooldown is consumed up front so that a failing activation cannot be
// retried immediately.
//
// Precondition: ctx must be fully populated.
// Postcondition: On nil error, state is Charging with a positive countdown.
func (i *Instance) BeginTelegraph(ctx *CastContext, now int64) error {
	if i.state != StateIdle {
		return fmt.Errorf("ability %q: activation already in flight (%s)", i.Definition().ID, i.state)
	}
	i.state = StateCharging
	i.countdown = i.Definition().TelegraphTicks
	i.phase = 0
	i.lastUsedTick = now
	i.cast = ctx
	return i.strategy.Telegraph(ctx)
}

// Step advances the countdown by one tick and fires any due transition:
// telegraph → execution, inter-phase chains, and the return to Idle after the
// post-fire window. No-op when Idle.
//
// Postcondition: A non-nil error means the effect failed mid-activation; the
// caller must Reset the instance (cooldown stays consumed).
func (i *Instance) Step() error {
	if i.state == StateIdle {
		return nil
	}

	i.countdown--
	if i.countdown > 0 {
		return nil
	}

	switch i.state {
	case StateCharging:
		return i.beginExecution()
	case StateExecuting:
		if i.phase > 0 {
			return i.runNextPhase()
		}
		i.Reset()
		return nil
	}
	return nil
}

// beginExecution fires the effect (or the first sub-phase of a chain).
func (i *Instance) beginExecution() error {
	i.state = StateExecuting

	if ph, ok := i.strategy.(Phased); ok {
		i.phase = 1
		err := ph.ExecutePhase(i.cast, 1)
		if err != nil {
			return err
		}
		i.armAfterPhase(ph)
		return nil
	}

	err := i.strategy.Execute(i.cast)
	if err != nil {
		return err
	}
	i.countdown = executeWindowTicks
	return nil
}

// runNextPhase advances a Phased chain by one sub-phase.
func (i *Instance) runNextPhase() error {
	ph := i.strategy.(Phased)
	i.phase++
	if err := ph.ExecutePhase(i.cast, i.phase); err != nil {
		return err
	}
	i.armAfterPhase(ph)
	return nil
}

// armAfterPhase arms the countdown toward the next sub-phase, or the post-fire
// window after the finale.
func (i *Instance) armAfterPhase(ph Phased) {
	if i.phase < ph.PhaseCount() {
		i.countdown = ph.PhaseDelay(i.phase)
		return
	}
	i.phase = 0
	i.countdown = executeWindowTicks
}

// HandleInterrupt applies a counterplay interrupt. During Charging the whole
// activation is cancelled when the variant is interruptible; during a Phased
// chain only sub-phases the variant marks interruptible can be cancelled
// (typically the first, representing sunk commitment thereafter).
//
// Postcondition: Returns true iff the activation was cancelled; the payload
// then never fires and the cooldown stays consumed.
func (i *Instance) HandleInterrupt(interrupter *Target) bool {
	switch i.state {
	case StateCharging:
		if !i.strategy.Interruptible() {
			return false
		}
	case StateExecuting:
		ph, ok := i.strategy.(Phased)
		if !ok || i.phase == 0 || !ph.PhaseInterruptible(i.phase) {
			return false
		}
	default:
		return false
	}

	i.strategy.OnInterrupt(i.cast, interrupter)
	i.Reset()
	return true
}

// Reset returns the instance to Idle, dropping any pending chain. The
// cooldown timestamp is preserved.
func (i *Instance) Reset() {
	i.state = StateIdle
	i.countdown = 0
	i.phase = 0
	i.cast = nil
}
