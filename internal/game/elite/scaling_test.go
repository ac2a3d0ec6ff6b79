package elite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/RedNetty/YakRealms-sub014/internal/game/elite"
)

func TestScaledCooldown(t *testing.T) {
	tests := []struct {
		name string
		base int
		tier elite.Tier
		want int
	}{
		{"tier 1 baseline", 120, 1, 120},
		{"tier 2 minus 5%", 120, 2, 114},
		{"tier 3 minus 10%", 120, 3, 108},
		{"tier 6 minus 25%", 120, 6, 90},
		{"tier above max clamps", 120, 9, 90},
		{"tier below min clamps", 120, 0, 120},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, elite.ScaledCooldown(tc.base, tc.tier))
		})
	}
}

func TestScaledCooldown_Property_Bounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.IntRange(1, 2000).Draw(rt, "base")
		tier := elite.Tier(rapid.IntRange(-3, 12).Draw(rt, "tier"))
		got := elite.ScaledCooldown(base, tier)
		assert.GreaterOrEqual(rt, got, base/2)
		assert.LessOrEqual(rt, got, base)
	})
}

func TestScaledDamage(t *testing.T) {
	tests := []struct {
		name string
		base int
		tier elite.Tier
		cat  elite.Category
		want int
	}{
		{"tier 1 baseline", 100, 1, elite.CategoryOffensive, 100},
		{"tier 3 offensive", 100, 3, elite.CategoryOffensive, 140},
		{"tier 3 ultimate scales harder", 100, 3, elite.CategoryUltimate, 160},
		{"tier 3 defensive scales gentler", 100, 3, elite.CategoryDefensive, 128},
		{"tier 6 offensive", 100, 6, elite.CategoryOffensive, 200},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, elite.ScaledDamage(tc.base, tc.tier, tc.cat))
		})
	}
}

func TestScaledDurationAndRange(t *testing.T) {
	assert.Equal(t, 100, elite.ScaledDuration(100, 1))
	assert.Equal(t, 110, elite.ScaledDuration(100, 3))
	assert.Equal(t, 125, elite.ScaledDuration(100, 6))

	assert.Equal(t, 6.0, elite.ScaledRange(6.0, 1))
	assert.Equal(t, 7.0, elite.ScaledRange(6.0, 3))
	assert.Equal(t, 8.5, elite.ScaledRange(6.0, 6))
}
