package elite

import (
	"sync"

	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/config"
	"github.com/RedNetty/YakRealms-sub014/internal/game/dice"
)

// GateEvaluator runs scripted usability gates. A nil evaluator fails every
// ability that declares a gate hook.
type GateEvaluator interface {
	CallGate(archetype, gate, combatantID string, healthFraction float64, targetCount int) bool
}

// entry is the coordinator-private registry record for one combatant.
type entry struct {
	combatant *Combatant
	instances []*Instance
	// usageCount is the number of triggered activations this encounter.
	usageCount int
	// lastAbilityTick is the tick of the most recent trigger, or -1.
	lastAbilityTick int64
	// lastSituation caches the snapshot of the most recent evaluation.
	lastSituation *Situation
}

// candidate pairs an eligible instance with its scoring for one cycle.
type candidate struct {
	instance *Instance
	priority AbilityPriority
	chance   float64
}

// Coordinator owns the per-combatant ability registries and enforces the
// encounter pacing policy: a global trigger gate, a usage cap, and a minimum
// interval between triggers. It is explicitly constructed and carries no
// package-level state; the owning loop drives time through Advance.
type Coordinator struct {
	mu sync.Mutex

	cfg      config.EliteConfig
	catalog  *Catalog
	analyzer *Analyzer
	src      dice.Source
	roller   *dice.Roller
	damage   DamageSink
	warnings WarningSink
	resolve  ResolveFunc
	scripts  GateEvaluator
	logger   *zap.Logger

	tick    int64
	entries map[string]*entry
}

// NewCoordinator wires a coordinator from its collaborators.
//
// Precondition: catalog, analyzer, src, roller, damage, warnings, resolve, and
// logger must be non-nil; scripts may be nil when no ability declares a gate
// hook.
func NewCoordinator(
	cfg config.EliteConfig,
	catalog *Catalog,
	analyzer *Analyzer,
	src dice.Source,
	roller *dice.Roller,
	damage DamageSink,
	warnings WarningSink,
	resolve ResolveFunc,
	scripts GateEvaluator,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		cfg:      cfg,
		catalog:  catalog,
		analyzer: analyzer,
		src:      src,
		roller:   roller,
		damage:   damage,
		warnings: warnings,
		resolve:  resolve,
		scripts:  scripts,
		logger:   logger,
		entries:  make(map[string]*entry),
	}
}

// InitializeFor registers a combatant and clones its archetype's ability kit.
// A bad catalog entry is skipped inside InstantiateFor; the combatant still
// gets the rest of its kit. Re-initializing an already registered combatant
// replaces its registry entry.
func (c *Coordinator) InitializeFor(cb *Combatant) {
	c.mu.Lock()
	defer c.mu.Unlock()

	instances := c.catalog.InstantiateFor(cb)
	c.entries[cb.ID] = &entry{
		combatant:       cb,
		instances:       instances,
		lastAbilityTick: -1,
	}
	c.logger.Debug("combatant registered",
		zap.String("combatant", cb.ID),
		zap.String("archetype", string(cb.Archetype)),
		zap.Int("abilities", len(instances)),
	)
}

// Evaluate runs one selection cycle for a combatant. It is a no-op when the
// combatant is unregistered or dead, there are no targets, the usage cap is
// reached, the minimum interval has not elapsed, or an activation is already
// in flight. Past those gates it rolls the global trigger chance, scores the
// usable abilities, and runs a single Bernoulli trial on the top candidate —
// a failed trial ends the cycle with no fallthrough to lesser candidates.
func (c *Coordinator) Evaluate(cb *Combatant, targets []*Target) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cb.ID]
	if !ok || cb.IsDead() || len(targets) == 0 {
		return
	}
	if e.usageCount >= c.cfg.UsageCap {
		return
	}
	if e.lastAbilityTick >= 0 && c.tick-e.lastAbilityTick < int64(c.cfg.MinIntervalTicks) {
		return
	}
	for _, inst := range e.instances {
		if inst.Active() {
			return
		}
	}

	if !dice.Bernoulli(c.src, c.cfg.GlobalTriggerChance) {
		return
	}

	sit := c.analyzer.Analyze(cb.Position, targets, cb.Archetype)
	e.lastSituation = sit

	top := c.selectCandidate(e, cb, targets, sit)
	if top == nil {
		return
	}
	if !dice.Bernoulli(c.src, top.chance) {
		return
	}

	ctx := &CastContext{
		Combatant: cb,
		Targets:   targets,
		Situation: sit,
		Damage:    c.damage,
		Warnings:  c.warnings,
		Roller:    c.roller,
		Logger:    c.logger,
	}
	if err := top.instance.BeginTelegraph(ctx, c.tick); err != nil {
		c.logger.Warn("telegraph failed",
			zap.String("combatant", cb.ID),
			zap.String("ability", top.instance.Definition().ID),
			zap.Error(err),
		)
		top.instance.Reset()
		return
	}

	e.usageCount++
	e.lastAbilityTick = c.tick
	c.logger.Debug("ability triggered",
		zap.String("combatant", cb.ID),
		zap.String("ability", top.instance.Definition().ID),
		zap.String("priority", top.priority.String()),
		zap.Float64("chance", top.chance),
		zap.Int64("tick", c.tick),
	)
}

// selectCandidate scores every usable instance and returns the best one:
// highest priority, then highest category-weighted contextual chance.
func (c *Coordinator) selectCandidate(e *entry, cb *Combatant, targets []*Target, sit *Situation) *candidate {
	var top *candidate
	for _, inst := range e.instances {
		if !inst.CanUse(c.tick, cb, targets) {
			continue
		}
		def := inst.Definition()
		if !c.gatePasses(def, cb, len(targets)) {
			continue
		}

		strategy := inst.Strategy()
		cand := &candidate{
			instance: inst,
			priority: strategy.SelectPriority(cb, targets, sit),
			chance:   strategy.ContextualChance(cb, targets, sit) * c.analyzer.CategoryBonus(cb.Archetype, def.Category),
		}
		if top == nil || cand.priority > top.priority ||
			(cand.priority == top.priority && cand.chance > top.chance) {
			top = cand
		}
	}
	return top
}

// gatePasses evaluates an ability's optional scripted gate.
func (c *Coordinator) gatePasses(def *Definition, cb *Combatant, targetCount int) bool {
	if def.GateHook == "" {
		return true
	}
	if c.scripts == nil {
		c.logger.Warn("gate hook declared but no script evaluator wired",
			zap.String("ability", def.ID),
		)
		return false
	}
	return c.scripts.CallGate(string(cb.Archetype), def.GateHook, cb.ID, cb.HealthFraction(), targetCount)
}

// Advance moves the engine one tick forward: it steps every active instance,
// fires due executions after a validity re-check, and periodically sweeps
// entries whose combatants are no longer resolvable. Effect failures and
// panics reset the instance; the cooldown stays consumed either way.
func (c *Coordinator) Advance() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	for id, e := range c.entries {
		live, ok := c.resolve(id)
		alive := ok && !live.IsDead()

		for _, inst := range e.instances {
			if !inst.Active() {
				continue
			}
			if !alive {
				// Stale chain: the combatant despawned or died mid-activation.
				inst.Reset()
				continue
			}
			c.stepInstance(id, inst)
		}
	}

	if c.cfg.SweepIntervalTicks > 0 && c.tick%int64(c.cfg.SweepIntervalTicks) == 0 {
		c.sweep()
	}
}

// stepInstance advances one active instance with panic recovery.
func (c *Coordinator) stepInstance(combatantID string, inst *Instance) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("ability execution panicked",
				zap.String("combatant", combatantID),
				zap.String("ability", inst.Definition().ID),
				zap.Any("panic", r),
			)
			inst.Reset()
		}
	}()

	if err := inst.Step(); err != nil {
		c.logger.Warn("ability execution failed",
			zap.String("combatant", combatantID),
			zap.String("ability", inst.Definition().ID),
			zap.Error(err),
		)
		inst.Reset()
	}
}

// sweep drops registry entries whose combatants no longer resolve.
func (c *Coordinator) sweep() {
	for id := range c.entries {
		if _, ok := c.resolve(id); !ok {
			delete(c.entries, id)
			c.logger.Debug("swept unresolvable combatant", zap.String("combatant", id))
		}
	}
}

// Interrupt forwards a counterplay interrupt to every active instance of the
// combatant.
//
// Postcondition: Returns true iff at least one activation was cancelled.
func (c *Coordinator) Interrupt(combatantID string, interrupter *Target) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[combatantID]
	if !ok {
		return false
	}

	cancelled := false
	for _, inst := range e.instances {
		if inst.Active() && inst.HandleInterrupt(interrupter) {
			cancelled = true
		}
	}
	return cancelled
}

// Cleanup removes a combatant's registry entry, dropping any in-flight chains.
func (c *Coordinator) Cleanup(combatantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, combatantID)
}

// UsageCount returns how many abilities the combatant has triggered this
// encounter, or 0 for unregistered combatants.
func (c *Coordinator) UsageCount(combatantID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[combatantID]; ok {
		return e.usageCount
	}
	return 0
}

// HasActiveAbility reports whether any of the combatant's instances is
// Charging or Executing.
func (c *Coordinator) HasActiveAbility(combatantID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[combatantID]
	if !ok {
		return false
	}
	for _, inst := range e.instances {
		if inst.Active() {
			return true
		}
	}
	return false
}

// CatalogSize returns the number of definitions in the backing catalog.
func (c *Coordinator) CatalogSize() int { return c.catalog.Size() }

// CurrentTick returns the engine's current tick.
func (c *Coordinator) CurrentTick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tick
}
