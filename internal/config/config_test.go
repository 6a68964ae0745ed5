package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	assert.NotEmpty(t, cfg.Wall.BeadingStrategyType)
	assert.Greater(t, cfg.Smoothing.MaxResolution, 0.0)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wall:\n  beading_strategy_type: outer_wall_inset\n  min_bead_width: 120\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "outer_wall_inset", cfg.Wall.BeadingStrategyType)
	assert.Equal(t, 120.0, cfg.Wall.MinBeadWidth)
	// unspecified fields retain their defaults
	assert.Greater(t, cfg.Smoothing.MaxResolution, 0.0)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Default()
	cfg.Retraction.BackPressureCompensation = 0.75
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.75, loaded.Retraction.BackPressureCompensation)
}

func TestWallSettingsConversion(t *testing.T) {
	cfg := Default()
	settings := cfg.WallSettings()
	assert.Equal(t, cfg.Wall.FillOutlineGaps, settings.FillOutlineGaps)
	assert.Equal(t, cfg.Wall.MinBeadWidth, settings.MinBeadWidth)
}
