package elite_test

import (
	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/game/dice"
	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

// fixedSrc is a deterministic Source returning val for every Intn call. With
// val 0 every die rolls 1 and every Bernoulli trial with p > 0 succeeds.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

type damageCall struct {
	targetID  string
	amount    int
	abilityID string
}

type statusCall struct {
	targetID string
	effect   string
	duration int
}

type warnCall struct {
	targetIDs []string
	text      string
	cue       string
	duration  int
}

// recorder captures every sink call for assertions.
type recorder struct {
	damage   []damageCall
	statuses []statusCall
	warnings []warnCall
}

func (r *recorder) ApplyDamage(targetID string, amount int, abilityID string) {
	r.damage = append(r.damage, damageCall{targetID, amount, abilityID})
}

func (r *recorder) ApplyStatus(targetID string, effect string, durationTicks int) {
	r.statuses = append(r.statuses, statusCall{targetID, effect, durationTicks})
}

func (r *recorder) Warn(targetIDs []string, text, cue string, durationTicks int) {
	r.warnings = append(r.warnings, warnCall{targetIDs, text, cue, durationTicks})
}

// openSampler classifies everything as air, yielding Open terrain.
func openSampler(_, _, _ float64) elite.Material { return elite.MaterialAir }

// solidSampler classifies everything as solid, yielding Confined terrain.
func solidSampler(_, _, _ float64) elite.Material { return elite.MaterialSolid }

// testCombatant builds a full-health combatant at the origin.
func testCombatant(arch elite.Archetype, tier elite.Tier) *elite.Combatant {
	return &elite.Combatant{
		ID:        "elite-1",
		Name:      "Test Elite",
		Archetype: arch,
		Tier:      tier,
		CurrentHP: 1000,
		MaxHP:     1000,
	}
}

// targetAt builds a full-health melee target at (x, 0, z).
func targetAt(id string, x, z float64) *elite.Target {
	return &elite.Target{
		ID:             id,
		Name:           id,
		Position:       elite.Vec3{X: x, Z: z},
		HealthFraction: 1.0,
		GearScore:      50,
		Role:           elite.RoleMelee,
	}
}

// testCastContext wires a cast context around the recorder with deterministic
// dice (every die rolls 1).
func testCastContext(cb *elite.Combatant, targets []*elite.Target, sit *elite.Situation, rec *recorder) *elite.CastContext {
	return &elite.CastContext{
		Combatant: cb,
		Targets:   targets,
		Situation: sit,
		Damage:    rec,
		Warnings:  rec,
		Roller:    dice.NewLoggedRoller(fixedSrc{val: 0}, zap.NewNop()),
		Logger:    zap.NewNop(),
	}
}
