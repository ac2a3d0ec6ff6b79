// Package dice provides the randomness abstraction for the elite ability
// engine: trigger-chance Bernoulli trials and dice-expression damage rolls.
package dice

import "fmt"

// RollResult holds the full audit trail for a single damage roll evaluation.
//
// Postcondition: Total() == sum(Dice) + Modifier.
type RollResult struct {
	Expression string // original expression string, e.g. "6d8+10"
	Dice       []int  // individual die results before modifier
	Modifier   int    // flat modifier (may be negative)
}

// Total returns the sum of all die results plus the modifier.
//
// Postcondition: return value == sum(r.Dice) + r.Modifier.
func (r RollResult) Total() int {
	total := r.Modifier
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// String returns a human-readable audit string in the format:
//
//	"6d8+10 → [4 5 2 8 1 7] +10 = 37"
//
// Precondition: r.Expression is non-empty.
func (r RollResult) String() string {
	if r.Expression == "" {
		panic("dice: RollResult.String() precondition violated: Expression must be non-empty")
	}
	return fmt.Sprintf("%s → %v %+d = %d", r.Expression, r.Dice, r.Modifier, r.Total())
}

// Source is the randomness provider for all trials and rolls.
//
// Implementations MUST be safe for concurrent use.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}

// chanceScale is the resolution of Bernoulli trials: probabilities are
// quantized to 1/10000 before rolling.
const chanceScale = 10000

// Bernoulli performs a single trial against probability p using src.
//
// Precondition: src must be non-nil.
// Postcondition: always false for p <= 0; always true for p >= 1.
func Bernoulli(src Source, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return src.Intn(chanceScale) < int(p*chanceScale)
}
