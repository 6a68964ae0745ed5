package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// RunManifest records the settings a single slicing run was executed with,
// saved as JSON alongside the run's exported output -- the engine-settings
// YAML in Config stays free of run-specific identity, mirroring the
// teacher's split between its YAML-free setup and its JSON app config.
type RunManifest struct {
	ID         string `json:"id"`
	ConfigPath string `json:"config_path"`
	Config     Config `json:"config"`
	OutputDir  string `json:"output_dir"`
}

// NewRunManifest builds a manifest for one run, minting a fresh ID.
func NewRunManifest(configPath string, cfg *Config, outputDir string) RunManifest {
	return RunManifest{
		ID:         uuid.New().String(),
		ConfigPath: configPath,
		Config:     *cfg,
		OutputDir:  outputDir,
	}
}

// SaveManifest writes m to path as indented JSON.
func SaveManifest(path string, m RunManifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// LoadManifest reads a previously saved run manifest from path.
func LoadManifest(path string) (RunManifest, error) {
	var m RunManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest: %w", err)
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest: %w", err)
	}
	return m, nil
}
