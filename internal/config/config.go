// Package config provides Viper-based configuration loading for the elite
// combat simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// SimulationConfig holds the discrete-time simulation loop settings.
type SimulationConfig struct {
	// TickIntervalMs is the real-time duration of one simulation tick in
	// milliseconds. The engine itself only counts ticks; this drives the
	// owning loop's ticker.
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
}

// EliteConfig holds the pacing policy for elite ability usage.
type EliteConfig struct {
	// GlobalTriggerChance is the per-cycle gate rolled before any per-ability
	// contextual chance is considered.
	GlobalTriggerChance float64 `mapstructure:"global_trigger_chance"`
	// UsageCap is the maximum number of abilities one combatant may trigger
	// within a single encounter.
	UsageCap int `mapstructure:"usage_cap"`
	// MinIntervalTicks is the minimum number of ticks between two ability
	// triggers by the same combatant.
	MinIntervalTicks int `mapstructure:"min_interval_ticks"`
	// SweepIntervalTicks is how often the coordinator sweeps registry entries
	// whose combatants are no longer resolvable.
	SweepIntervalTicks int `mapstructure:"sweep_interval_ticks"`
	// ScriptInstructionLimit caps Lua opcodes per gate-hook evaluation.
	// Zero uses the scripting package default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Elite      EliteConfig      `mapstructure:"elite"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing
// all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateElite(c.Elite); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	if s.TickIntervalMs < 1 {
		return fmt.Errorf("simulation.tick_interval_ms must be >= 1, got %d", s.TickIntervalMs)
	}
	return nil
}

func validateElite(e EliteConfig) error {
	var errs []string
	if e.GlobalTriggerChance <= 0 || e.GlobalTriggerChance > 1 {
		errs = append(errs, fmt.Sprintf("elite.global_trigger_chance must be in (0, 1], got %g", e.GlobalTriggerChance))
	}
	if e.UsageCap < 1 {
		errs = append(errs, fmt.Sprintf("elite.usage_cap must be >= 1, got %d", e.UsageCap))
	}
	if e.MinIntervalTicks < 0 {
		errs = append(errs, fmt.Sprintf("elite.min_interval_ticks must be >= 0, got %d", e.MinIntervalTicks))
	}
	if e.SweepIntervalTicks < 1 {
		errs = append(errs, fmt.Sprintf("elite.sweep_interval_ticks must be >= 1, got %d", e.SweepIntervalTicks))
	}
	if e.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("elite.script_instruction_limit must be >= 0, got %d", e.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with YAK_ prefix
	v.SetEnvPrefix("YAK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("simulation.tick_interval_ms", 100)

	v.SetDefault("elite.global_trigger_chance", 0.08)
	v.SetDefault("elite.usage_cap", 8)
	v.SetDefault("elite.min_interval_ticks", 50)
	v.SetDefault("elite.sweep_interval_ticks", 200)
	v.SetDefault("elite.script_instruction_limit", 0)
}
