package main

import (
	"go.uber.org/zap"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

// encounter is the simulator's toy battlefield: a pack of elite combatants,
// one adventuring party, and sink implementations that mutate both. It stands
// in for the combat layer a real server would wire.
type encounter struct {
	combatants []*elite.Combatant
	targets    []*elite.Target
	// targetHP tracks absolute target hit points behind the health fractions.
	targetHP map[string]int
	logger   *zap.Logger
}

// targetMaxHP is the flat hit-point pool backing each party member.
const targetMaxHP = 400

func newEncounter(logger *zap.Logger) *encounter {
	e := &encounter{
		combatants: []*elite.Combatant{
			{ID: "elite-brute-1", Name: "Gorehorn", Archetype: "brute", Tier: 3, Position: elite.Vec3{X: 0, Y: 64, Z: 0}, CurrentHP: 1200, MaxHP: 1200},
			{ID: "elite-reaver-1", Name: "Sliver", Archetype: "reaver", Tier: 4, Position: elite.Vec3{X: 12, Y: 64, Z: 4}, CurrentHP: 800, MaxHP: 800},
			{ID: "elite-arcanist-1", Name: "Vexmoor", Archetype: "arcanist", Tier: 5, Position: elite.Vec3{X: -6, Y: 64, Z: 10}, CurrentHP: 950, MaxHP: 950},
		},
		targets: []*elite.Target{
			{ID: "player-1", Name: "Aldric", Position: elite.Vec3{X: 3, Y: 64, Z: 2}, HealthFraction: 1.0, GearScore: 72, Role: elite.RoleTank},
			{ID: "player-2", Name: "Mirelle", Position: elite.Vec3{X: 4, Y: 64, Z: 3}, HealthFraction: 1.0, GearScore: 64, Role: elite.RoleHealer},
			{ID: "player-3", Name: "Thane", Position: elite.Vec3{X: 2, Y: 64, Z: 5}, HealthFraction: 1.0, GearScore: 58, Role: elite.RoleMelee},
			{ID: "player-4", Name: "Oswin", Position: elite.Vec3{X: 14, Y: 64, Z: 8}, HealthFraction: 1.0, GearScore: 81, Role: elite.RoleRanged},
			{ID: "player-5", Name: "Karra", Position: elite.Vec3{X: 5, Y: 64, Z: 1}, HealthFraction: 1.0, GearScore: 45, Role: elite.RoleMelee},
		},
		targetHP: make(map[string]int),
		logger:   logger,
	}
	for _, t := range e.targets {
		e.targetHP[t.ID] = targetMaxHP
	}
	return e
}

// liveTargets returns the party members still standing.
func (e *encounter) liveTargets() []*elite.Target {
	var out []*elite.Target
	for _, t := range e.targets {
		if t.HealthFraction > 0 {
			out = append(out, t)
		}
	}
	return out
}

// resolve is the coordinator's combatant lookup.
func (e *encounter) resolve(combatantID string) (*elite.Combatant, bool) {
	for _, cb := range e.combatants {
		if cb.ID == combatantID {
			return cb, true
		}
	}
	return nil, false
}

// ApplyDamage implements elite.DamageSink against the party.
func (e *encounter) ApplyDamage(targetID string, amount int, abilityID string) {
	for _, t := range e.targets {
		if t.ID != targetID {
			continue
		}
		hp := e.targetHP[targetID] - amount
		if hp < 0 {
			hp = 0
		}
		e.targetHP[targetID] = hp
		t.HealthFraction = float64(hp) / float64(targetMaxHP)
		e.logger.Info("damage",
			zap.String("target", t.Name),
			zap.Int("amount", amount),
			zap.String("ability", abilityID),
			zap.Float64("health", t.HealthFraction),
		)
		return
	}
}

// ApplyStatus implements elite.DamageSink for both party members and the
// elites themselves (self-buffs address the combatant's own ID).
func (e *encounter) ApplyStatus(targetID string, effect string, durationTicks int) {
	e.logger.Info("status",
		zap.String("target", targetID),
		zap.String("effect", effect),
		zap.Int("duration_ticks", durationTicks),
	)
}

// Warn implements elite.WarningSink.
func (e *encounter) Warn(targetIDs []string, text, cue string, durationTicks int) {
	e.logger.Info("telegraph",
		zap.Strings("targets", targetIDs),
		zap.String("text", text),
		zap.String("cue", cue),
		zap.Int("duration_ticks", durationTicks),
	)
}
