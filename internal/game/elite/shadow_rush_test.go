package elite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

func rushDef() *elite.Definition {
	return &elite.Definition{
		ID:             "shadow_rush",
		Name:           "Shadow Rush",
		Category:       elite.CategoryUtility,
		CooldownTicks:  100,
		TelegraphTicks: 6,
		BaseChance:     0.12,
		DangerRadius:   3.0,
		Damage:         "4d6+6",
		Warning:        "Shadows coil!",
		Cue:            "shadow_hiss",
	}
}

func TestShadowRush_Prerequisites_EngagementBand(t *testing.T) {
	rush := elite.NewShadowRush(rushDef())
	cb := testCombatant("reaver", 1)

	assert.False(t, rush.MeetsPrerequisites(cb, []*elite.Target{targetAt("close", 3, 0)}))
	assert.False(t, rush.MeetsPrerequisites(cb, []*elite.Target{targetAt("beyond", 25, 0)}))
	assert.True(t, rush.MeetsPrerequisites(cb, []*elite.Target{targetAt("band", 10, 0)}))
}

func TestShadowRush_PrefersBackline(t *testing.T) {
	rush := elite.NewShadowRush(rushDef())
	cb := testCombatant("reaver", 1)
	rec := &recorder{}

	melee := targetAt("melee", 15, 0)
	healer := targetAt("healer", 10, 0)
	healer.Role = elite.RoleHealer
	targets := []*elite.Target{melee, healer}

	require.NoError(t, rush.Execute(testCastContext(cb, targets, nil, rec)))

	require.Len(t, rec.damage, 1)
	assert.Equal(t, "healer", rec.damage[0].targetID)
	assert.Equal(t, healer.Position, cb.Position, "rush closes the gap")
	require.Len(t, rec.statuses, 1)
	assert.Equal(t, "shadow_marked", rec.statuses[0].effect)
}

func TestShadowRush_ChanceMultipliers(t *testing.T) {
	rush := elite.NewShadowRush(rushDef())
	cb := testCombatant("reaver", 1)
	a := elite.NewAnalyzer(nil)

	// One isolated ranged mark, far out: mobility ×1.5, isolated ×1.3,
	// backline ×1.2.
	mark := targetAt("mark", 12, 0)
	mark.Role = elite.RoleRanged
	targets := []*elite.Target{mark}
	sit := a.Analyze(cb.Position, targets, cb.Archetype)
	require.True(t, sit.FavorsMobility())

	assert.InDelta(t, 0.12*1.5*1.3*1.2, rush.ContextualChance(cb, targets, sit), 1e-9)
}

func TestShadowRush_Priority(t *testing.T) {
	rush := elite.NewShadowRush(rushDef())
	cb := testCombatant("reaver", 1)
	a := elite.NewAnalyzer(nil)

	healer := targetAt("healer", 10, 0)
	healer.Role = elite.RoleHealer
	targets := []*elite.Target{healer}
	sit := a.Analyze(cb.Position, targets, cb.Archetype)
	assert.Equal(t, elite.PriorityHigh, rush.SelectPriority(cb, targets, sit))

	melee := []*elite.Target{targetAt("melee", 10, 0)}
	sit = a.Analyze(cb.Position, melee, cb.Archetype)
	assert.Equal(t, elite.PriorityNormal, rush.SelectPriority(cb, melee, sit))
}

func TestShadowRush_TelegraphWarnsOnlyMark(t *testing.T) {
	rush := elite.NewShadowRush(rushDef())
	cb := testCombatant("reaver", 1)
	rec := &recorder{}
	targets := []*elite.Target{targetAt("mark", 10, 0), targetAt("bystander", 2, 0)}

	require.NoError(t, rush.Telegraph(testCastContext(cb, targets, nil, rec)))

	require.Len(t, rec.warnings, 1)
	assert.Equal(t, []string{"mark"}, rec.warnings[0].targetIDs)
}
