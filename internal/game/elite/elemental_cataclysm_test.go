package elite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

func cataclysmDef() *elite.Definition {
	return &elite.Definition{
		ID:             "elemental_cataclysm",
		Name:           "Elemental Cataclysm",
		Category:       elite.CategoryUltimate,
		CooldownTicks:  400,
		TelegraphTicks: 2,
		BaseChance:     0.10,
		DangerRadius:   10.0,
		Damage:         "5d10+15",
		Warning:        "The air ignites!",
		Cue:            "cataclysm_roar",
	}
}

func cataclysmTargets() []*elite.Target {
	return []*elite.Target{targetAt("p1", 3, 0), targetAt("p2", 0, 4)}
}

func TestElementalCataclysm_FullChain(t *testing.T) {
	ult := elite.NewElementalCataclysm(cataclysmDef())
	inst := elite.NewInstance(ult)
	cb := testCombatant("arcanist", 1)
	rec := &recorder{}

	require.NoError(t, inst.BeginTelegraph(testCastContext(cb, cataclysmTargets(), nil, rec), 0))
	require.Len(t, rec.warnings, 1)
	assert.ElementsMatch(t, []string{"p1", "p2"}, rec.warnings[0].targetIDs)

	// Telegraph (2) + three 10-tick phase delays + post-fire window.
	for i := 0; i < 40; i++ {
		require.NoError(t, inst.Step())
	}
	assert.Equal(t, elite.StateIdle, inst.State())

	// Four phases hit both targets.
	require.Len(t, rec.damage, 8)
	// Fixed dice: 5d10+15 → 20 per wave; the finale doubles it.
	assert.Equal(t, 20, rec.damage[0].amount)
	assert.Equal(t, 40, rec.damage[6].amount)

	var effects []string
	for _, s := range rec.statuses {
		effects = append(effects, s.effect)
	}
	assert.Contains(t, effects, "scorched")
	assert.Contains(t, effects, "frozen")
	assert.Contains(t, effects, "shocked")
	assert.Contains(t, effects, "knocked_down")
}

// Interrupted during the first sub-phase, the second and third waves and the
// finale must never fire.
func TestElementalCataclysm_InterruptDuringFirstSubPhase(t *testing.T) {
	ult := elite.NewElementalCataclysm(cataclysmDef())
	inst := elite.NewInstance(ult)
	cb := testCombatant("arcanist", 1)
	rec := &recorder{}

	require.NoError(t, inst.BeginTelegraph(testCastContext(cb, cataclysmTargets(), nil, rec), 0))
	require.NoError(t, inst.Step())
	require.NoError(t, inst.Step())
	require.Len(t, rec.damage, 2, "flame wave fired")

	assert.True(t, inst.HandleInterrupt(targetAt("hero", 1, 0)))
	assert.Equal(t, elite.StateIdle, inst.State())

	for i := 0; i < 50; i++ {
		require.NoError(t, inst.Step())
	}
	assert.Len(t, rec.damage, 2, "no further waves after the interrupt")
}

func TestElementalCataclysm_CommittedAfterFirstSubPhase(t *testing.T) {
	ult := elite.NewElementalCataclysm(cataclysmDef())
	inst := elite.NewInstance(ult)
	cb := testCombatant("arcanist", 1)
	rec := &recorder{}

	require.NoError(t, inst.BeginTelegraph(testCastContext(cb, cataclysmTargets(), nil, rec), 0))
	// Telegraph, first wave, then the delay into the frost wave.
	for i := 0; i < 12; i++ {
		require.NoError(t, inst.Step())
	}
	require.Len(t, rec.damage, 4, "frost wave fired")

	assert.False(t, inst.HandleInterrupt(targetAt("hero", 1, 0)))
	for i := 0; i < 40; i++ {
		require.NoError(t, inst.Step())
	}
	assert.Len(t, rec.damage, 8, "chain ran to completion")
}

func TestElementalCataclysm_ChanceHeuristics(t *testing.T) {
	ult := elite.NewElementalCataclysm(cataclysmDef())
	cb := testCombatant("arcanist", 3)
	a := elite.NewAnalyzer(nil)

	// Full-health opening: held back.
	fresh := cataclysmTargets()
	sit := a.Analyze(cb.Position, fresh, cb.Archetype)
	require.Equal(t, elite.PhaseOpening, sit.Phase)
	assert.InDelta(t, 0.10*0.5, ult.ContextualChance(cb, fresh, sit), 1e-9)
	assert.Equal(t, elite.PriorityHigh, ult.SelectPriority(cb, fresh, sit))

	// Desperate phase: pushed hard.
	worn := cataclysmTargets()
	worn[0].HealthFraction = 0.2
	worn[1].HealthFraction = 0.3
	sit = a.Analyze(cb.Position, worn, cb.Archetype)
	require.Equal(t, elite.PhaseDesperate, sit.Phase)
	assert.InDelta(t, 0.10*1.5, ult.ContextualChance(cb, worn, sit), 1e-9)
	assert.Equal(t, elite.PriorityCritical, ult.SelectPriority(cb, worn, sit))
}

func TestElementalCataclysm_Prerequisites(t *testing.T) {
	ult := elite.NewElementalCataclysm(cataclysmDef())
	cb := testCombatant("arcanist", 1)

	assert.False(t, ult.MeetsPrerequisites(cb, []*elite.Target{targetAt("p1", 3, 0)}))
	assert.True(t, ult.MeetsPrerequisites(cb, cataclysmTargets()))
}
