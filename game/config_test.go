package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "match.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConfig(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		require.Equal(t, CombatPrecision, cfg.Combat)
	})

	t.Run("empty combat mode defaults to precision", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Combat = ""
		require.NoError(t, cfg.Validate())
		require.Equal(t, CombatPrecision, cfg.Combat)
	})

	t.Run("negative delay", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AITurnDelayMs = -1
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("a single seated player is allowed", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Roles = map[PlayerID]Role{3: RoleScripted}
		require.NoError(t, cfg.Validate())
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := writeConfig(t, `
size: 15
weapon_threshold: 6
roles:
  1: human
  3: ai
combat: beam
early_finish: true
seed: 42
`)
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, 15, cfg.Size)
		require.Equal(t, 6, cfg.WeaponThreshold)
		require.Equal(t, map[PlayerID]Role{1: RoleHuman, 3: RoleScripted}, cfg.Roles)
		require.Equal(t, CombatBeam, cfg.Combat)
		require.True(t, cfg.EarlyFinish)
		require.Equal(t, uint64(42), cfg.Seed)
		require.Equal(t, DefaultConfig().AITurnDelayMs, cfg.AITurnDelayMs)
	})

	t.Run("missing roles keep the default lineup", func(t *testing.T) {
		cfg, err := LoadConfig(writeConfig(t, "size: 20\n"))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig().Roles, cfg.Roles)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "size: 11\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = LoadConfig(writeConfig(t, "roles:\n  1: wizard\n"))
		require.ErrorContains(t, err, "wizard")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
