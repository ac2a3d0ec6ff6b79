package elite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Builder constructs a fresh strategy around a catalog definition. Keeping an
// explicit map of builders keyed by ability id gives each combatant its own
// instance without any runtime type introspection.
type Builder func(def *Definition) Strategy

// DefaultBuilders maps the built-in ability family to its constructors.
func DefaultBuilders() map[string]Builder {
	return map[string]Builder{
		"ground_slam":         NewGroundSlam,
		"executioner_strike":  NewExecutionerStrike,
		"stone_ward":          NewStoneWard,
		"shadow_rush":         NewShadowRush,
		"elemental_cataclysm": NewElementalCataclysm,
	}
}

// archetypeFile is the YAML shape of one archetype content file.
type archetypeFile struct {
	Archetype string   `yaml:"archetype"`
	Abilities []string `yaml:"abilities"`
}

// Catalog holds the validated ability definitions, the archetype → ability-id
// lists, and the builder map. It is read-only after loading and safe for
// concurrent use.
type Catalog struct {
	defs     map[string]*Definition
	lists    map[Archetype][]string
	builders map[string]Builder
	logger   *zap.Logger
}

// NewCatalog creates an empty catalog with the default builders registered.
//
// Precondition: logger must be non-nil.
func NewCatalog(logger *zap.Logger) *Catalog {
	return &Catalog{
		defs:     make(map[string]*Definition),
		lists:    make(map[Archetype][]string),
		builders: DefaultBuilders(),
		logger:   logger,
	}
}

// RegisterDefinition adds a validated definition to the catalog.
//
// Postcondition: Returns an error on validation failure or duplicate id.
func (c *Catalog) RegisterDefinition(def *Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := c.defs[def.ID]; exists {
		return fmt.Errorf("ability %q: duplicate definition", def.ID)
	}
	c.defs[def.ID] = def
	return nil
}

// RegisterBuilder maps an ability id to its strategy constructor, replacing
// any existing builder for that id.
func (c *Catalog) RegisterBuilder(id string, b Builder) {
	c.builders[id] = b
}

// RegisterArchetype assigns an ability-id list to an archetype, replacing any
// existing list.
func (c *Catalog) RegisterArchetype(arch Archetype, abilityIDs []string) {
	c.lists[arch] = abilityIDs
}

// LoadContent loads all ability definitions from abilityDir and all archetype
// lists from archetypeDir.
//
// Postcondition: Returns an error on the first unreadable or invalid file;
// entries registered before the failure remain registered.
func (c *Catalog) LoadContent(abilityDir, archetypeDir string) error {
	defs, err := LoadDefinitions(abilityDir)
	if err != nil {
		return err
	}
	for _, def := range defs {
		if err := c.RegisterDefinition(def); err != nil {
			return err
		}
	}

	entries, err := os.ReadDir(archetypeDir)
	if err != nil {
		return fmt.Errorf("reading archetype dir %q: %w", archetypeDir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(archetypeDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %q: %w", path, err)
		}

		var file archetypeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parsing archetype %q: %w", path, err)
		}
		if file.Archetype == "" {
			return fmt.Errorf("archetype file %q: archetype must not be empty", path)
		}
		c.RegisterArchetype(Archetype(file.Archetype), file.Abilities)
	}
	return nil
}

// Size returns the number of registered definitions.
func (c *Catalog) Size() int { return len(c.defs) }

// Definition looks up a registered definition by ability id.
func (c *Catalog) Definition(id string) (*Definition, bool) {
	def, ok := c.defs[id]
	return def, ok
}

// Archetypes returns the registered archetype names, sorted.
func (c *Catalog) Archetypes() []Archetype {
	out := make([]Archetype, 0, len(c.lists))
	for arch := range c.lists {
		out = append(out, arch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AbilityIDs returns the ability-id list for an archetype, or nil.
func (c *Catalog) AbilityIDs(arch Archetype) []string {
	return c.lists[arch]
}

// InstantiateFor clones one fresh instance per cataloged ability of the
// combatant's archetype. An unknown ability id or a missing builder is logged
// at Warn and skipped; a single bad entry never sinks the rest of the kit.
//
// Postcondition: Every returned instance is Idle and unused.
func (c *Catalog) InstantiateFor(cb *Combatant) []*Instance {
	ids := c.lists[cb.Archetype]
	instances := make([]*Instance, 0, len(ids))
	for _, id := range ids {
		def, ok := c.defs[id]
		if !ok {
			c.logger.Warn("archetype references unknown ability",
				zap.String("archetype", string(cb.Archetype)),
				zap.String("ability", id),
			)
			continue
		}
		builder, ok := c.builders[id]
		if !ok {
			c.logger.Warn("no builder registered for ability",
				zap.String("archetype", string(cb.Archetype)),
				zap.String("ability", id),
			)
			continue
		}
		instances = append(instances, NewInstance(builder(def)))
	}
	return instances
}
