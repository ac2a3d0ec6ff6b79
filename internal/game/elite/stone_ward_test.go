package elite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

func wardDef() *elite.Definition {
	return &elite.Definition{
		ID:             "stone_ward",
		Name:           "Stone Ward",
		Category:       elite.CategoryDefensive,
		CooldownTicks:  200,
		TelegraphTicks: 10,
		BaseChance:     0.20,
		DangerRadius:   8.0,
		Warning:        "Stones rise!",
		Cue:            "stone_grind",
	}
}

func TestStoneWard_Prerequisites(t *testing.T) {
	ward := elite.NewStoneWard(wardDef())
	cb := testCombatant("warden", 1)
	targets := []*elite.Target{targetAt("t", 2, 0)}

	assert.False(t, ward.MeetsPrerequisites(cb, targets), "full health")

	cb.CurrentHP = 500
	assert.True(t, ward.MeetsPrerequisites(cb, targets))
}

func TestStoneWard_ChanceRisesWithDamageTaken(t *testing.T) {
	ward := elite.NewStoneWard(wardDef())
	cb := testCombatant("warden", 1)
	a := elite.NewAnalyzer(nil)

	lone := []*elite.Target{targetAt("t", 2, 0)}
	pack := []*elite.Target{
		targetAt("p1", 1, 0), targetAt("p2", 2, 1),
		targetAt("p3", 0, 2), targetAt("p4", 3, 0), targetAt("p5", 1, 3),
	}

	cb.CurrentHP = 550
	steady := ward.ContextualChance(cb, lone, a.Analyze(cb.Position, lone, cb.Archetype))
	cb.CurrentHP = 500
	pressured := ward.ContextualChance(cb, pack, a.Analyze(cb.Position, pack, cb.Archetype))
	cb.CurrentHP = 300
	critical := ward.ContextualChance(cb, pack, a.Analyze(cb.Position, pack, cb.Archetype))

	assert.InDelta(t, 0.20, steady, 1e-9)
	assert.InDelta(t, 0.20*1.4, pressured, 1e-9)
	assert.InDelta(t, 0.20*1.8, critical, 1e-9)
}

func TestStoneWard_Priority(t *testing.T) {
	ward := elite.NewStoneWard(wardDef())
	cb := testCombatant("warden", 1)
	targets := []*elite.Target{targetAt("t", 2, 0)}
	sit := elite.NewAnalyzer(nil).Analyze(cb.Position, targets, cb.Archetype)

	cb.CurrentHP = 200
	assert.Equal(t, elite.PriorityCritical, ward.SelectPriority(cb, targets, sit))
	cb.CurrentHP = 400
	assert.Equal(t, elite.PriorityHigh, ward.SelectPriority(cb, targets, sit))
	cb.CurrentHP = 550
	assert.Equal(t, elite.PriorityNormal, ward.SelectPriority(cb, targets, sit))
}

func TestStoneWard_Execute_ShieldsSelf(t *testing.T) {
	ward := elite.NewStoneWard(wardDef())
	cb := testCombatant("warden", 3)
	cb.CurrentHP = 300
	rec := &recorder{}

	require.NoError(t, ward.Execute(testCastContext(cb, []*elite.Target{targetAt("t", 2, 0)}, nil, rec)))

	assert.Empty(t, rec.damage)
	require.Len(t, rec.statuses, 1)
	assert.Equal(t, cb.ID, rec.statuses[0].targetID)
	assert.Equal(t, "stone_ward", rec.statuses[0].effect)
	// 100 base ticks +5/tier above 1.
	assert.Equal(t, 110, rec.statuses[0].duration)
}

func TestStoneWard_NotInterruptible(t *testing.T) {
	ward := elite.NewStoneWard(wardDef())
	assert.False(t, ward.Interruptible())

	// An interrupt delivered mid-charge has no observable effect.
	inst := elite.NewInstance(ward)
	cb := testCombatant("warden", 1)
	cb.CurrentHP = 300
	rec := &recorder{}
	ctx := testCastContext(cb, []*elite.Target{targetAt("t", 2, 0)}, nil, rec)

	require.NoError(t, inst.BeginTelegraph(ctx, 0))
	assert.False(t, inst.HandleInterrupt(targetAt("hero", 1, 0)))

	for i := 0; i < 10; i++ {
		require.NoError(t, inst.Step())
	}
	require.Len(t, rec.statuses, 1)
	assert.Equal(t, "stone_ward", rec.statuses[0].effect)
}
