package game

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"miners/meta"
)

// CombatMode selects the CombatResolver a match uses.
type CombatMode string

const (
	CombatPrecision CombatMode = "precision"
	CombatBeam      CombatMode = "beam"
)

// Config is everything needed to start a match.
type Config struct {
	Size            int               `yaml:"size" json:"size"`
	WeaponThreshold int               `yaml:"weapon_threshold" json:"weapon_threshold"`
	Roles           map[PlayerID]Role `yaml:"roles" json:"roles"`
	AllowManualSkip bool              `yaml:"allow_manual_skip" json:"allow_manual_skip"`
	AITurnDelayMs   int               `yaml:"ai_turn_delay_ms" json:"ai_turn_delay_ms"`
	Combat          CombatMode        `yaml:"combat" json:"combat"`
	EarlyFinish     bool              `yaml:"early_finish" json:"early_finish"`
	Seed            uint64            `yaml:"seed" json:"seed"`
}

// DefaultConfig is a 10x10 board with one human against three scripted players.
func DefaultConfig() Config {
	return Config{
		Size:            meta.DefaultSize,
		WeaponThreshold: meta.DefaultWeaponThreshold,
		Roles: map[PlayerID]Role{
			1: RoleHuman,
			2: RoleScripted,
			3: RoleScripted,
			4: RoleScripted,
		},
		AITurnDelayMs: meta.DefaultAITurnDelayMs,
		Combat:        CombatPrecision,
	}
}

// Validate checks the config and fills in the combat mode when unset.
func (cfg *Config) Validate() error {
	if !slices.Contains(meta.BoardSizes, cfg.Size) {
		return fmt.Errorf("%w: board size %d not one of %v", ErrInvalidConfig, cfg.Size, meta.BoardSizes)
	}
	if cfg.WeaponThreshold < meta.MinWeaponThreshold || cfg.WeaponThreshold > meta.MaxWeaponThreshold {
		return fmt.Errorf("%w: weapon threshold %d outside [%d,%d]", ErrInvalidConfig,
			cfg.WeaponThreshold, meta.MinWeaponThreshold, meta.MaxWeaponThreshold)
	}
	seated := 0
	for id := range cfg.Roles {
		if !id.Valid() {
			return fmt.Errorf("%w: role for %d", ErrInvalidConfig, id)
		}
		if cfg.Roles[id] != RoleInactive {
			seated++
		}
	}
	if seated == 0 {
		return fmt.Errorf("%w: no seated players", ErrInvalidConfig)
	}
	if cfg.AITurnDelayMs < 0 {
		return fmt.Errorf("%w: negative ai turn delay", ErrInvalidConfig)
	}
	switch cfg.Combat {
	case "":
		cfg.Combat = CombatPrecision
	case CombatPrecision, CombatBeam:
	default:
		return fmt.Errorf("%w: unknown combat mode %q", ErrInvalidConfig, cfg.Combat)
	}
	return nil
}

// LoadConfig reads a YAML match config. Missing fields keep DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	// roles are replaced wholesale rather than merged with the defaults
	cfg.Roles = nil
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Roles == nil {
		cfg.Roles = DefaultConfig().Roles
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
