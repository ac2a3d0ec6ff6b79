package elite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/RedNetty/YakRealms-sub014/internal/game/dice"
)

// Category groups abilities for archetype weighting and tier damage scaling.
type Category string

// Ability categories.
const (
	CategoryOffensive Category = "offensive"
	CategoryDefensive Category = "defensive"
	CategoryUtility   Category = "utility"
	CategoryUltimate  Category = "ultimate"
)

// valid reports whether c is a recognized category.
func (c Category) valid() bool {
	switch c {
	case CategoryOffensive, CategoryDefensive, CategoryUtility, CategoryUltimate:
		return true
	}
	return false
}

// AbilityPriority is the primary selection key among eligible abilities.
type AbilityPriority int

// Selection priorities, lowest to highest.
const (
	PriorityLow AbilityPriority = iota
	PriorityNormal
	PriorityHigh
	PriorityCritical
)

// String returns the lowercase priority name.
func (p AbilityPriority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	default:
		return "critical"
	}
}

// AbilityState is the lifecycle state of one ability instance.
type AbilityState int

// Lifecycle states. Within one activation, transitions run strictly
// Idle → Charging → Executing → Idle.
const (
	StateIdle AbilityState = iota
	StateCharging
	StateExecuting
)

// String returns the lowercase state name.
func (s AbilityState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCharging:
		return "charging"
	default:
		return "executing"
	}
}

// Definition is a static catalog entry describing one ability. Definitions are
// read-only after load; per-combatant runtime state lives on Instance.
type Definition struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// Category groups the ability for weighting and damage scaling.
	Category Category `yaml:"category"`
	// CooldownTicks is the base cooldown before tier scaling.
	CooldownTicks int `yaml:"cooldown_ticks"`
	// TelegraphTicks is the warned charging window before the effect fires.
	TelegraphTicks int `yaml:"telegraph_ticks"`
	// BaseChance is the unadjusted trigger probability in (0, 1].
	BaseChance float64 `yaml:"base_chance"`
	// DangerRadius bounds the warning broadcast and area effects, before
	// tier range scaling.
	DangerRadius float64 `yaml:"danger_radius"`
	// Damage is a dice expression (e.g. "6d8+10"); empty for abilities with
	// no direct damage.
	Damage string `yaml:"damage"`
	// Warning and Cue are the text and audio/visual signal broadcast to
	// endangered targets when the telegraph starts.
	Warning string `yaml:"warning"`
	Cue     string `yaml:"cue"`
	// GateHook optionally names a Lua gate function that must return true
	// for the ability to be usable.
	GateHook string `yaml:"gate_hook"`
}

// Validate checks that the definition satisfies catalog invariants.
//
// Precondition: d must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Category is
// recognized, CooldownTicks >= 1, TelegraphTicks >= 1, BaseChance in (0, 1],
// DangerRadius >= 0, and Damage (if set) parses as a dice expression.
func (d *Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("ability definition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("ability definition %q: name must not be empty", d.ID)
	}
	if !d.Category.valid() {
		return fmt.Errorf("ability definition %q: unknown category %q", d.ID, d.Category)
	}
	if d.CooldownTicks < 1 {
		return fmt.Errorf("ability definition %q: cooldown_ticks must be >= 1", d.ID)
	}
	if d.TelegraphTicks < 1 {
		return fmt.Errorf("ability definition %q: telegraph_ticks must be >= 1", d.ID)
	}
	if d.BaseChance <= 0 || d.BaseChance > 1 {
		return fmt.Errorf("ability definition %q: base_chance must be in (0, 1], got %g", d.ID, d.BaseChance)
	}
	if d.DangerRadius < 0 {
		return fmt.Errorf("ability definition %q: danger_radius must be >= 0", d.ID)
	}
	if d.Damage != "" {
		if _, err := dice.Parse(d.Damage); err != nil {
			return fmt.Errorf("ability definition %q: %w", d.ID, err)
		}
	}
	return nil
}

// LoadDefinitionFromBytes parses a single ability definition from raw YAML.
//
// Postcondition: Returns a validated *Definition or an error.
func LoadDefinitionFromBytes(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing ability YAML: %w", err)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadDefinitions reads all *.yaml files in dir and returns the parsed
// definitions.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all definitions or an error on the first parse or
// validation failure; on error, the partial result is discarded.
func LoadDefinitions(dir string) ([]*Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading ability dir %q: %w", dir, err)
	}

	var defs []*Definition
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		def, err := LoadDefinitionFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
