package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunManifestRoundTrips(t *testing.T) {
	cfg := Default()
	m := NewRunManifest("config.yaml", cfg, "out/")
	assert.NotEmpty(t, m.ID)

	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	require.NoError(t, SaveManifest(path, m))

	loaded, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.ID, loaded.ID)
	assert.Equal(t, m.Config.Wall.BeadingStrategyType, loaded.Config.Wall.BeadingStrategyType)
}

func TestLoadManifestRejectsMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
