// Package config loads the engine's tunable settings surface (outline
// preparation, beading strategy, smoothing, back-pressure compensation)
// from a YAML document, grounded on the teacher-pack's config.go
// (Config/DefaultConfig/LoadConfig shape: a default-filled struct that a
// file on disk overrides field by field).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/slicecore/internal/plan"
	"github.com/piwi3910/slicecore/internal/wall"
)

// Config is the full set of options named in the configuration surface
// table: wall generation, junction smoothing, and retraction/back-pressure
// tuning.
type Config struct {
	Wall       WallConfig       `yaml:"wall"`
	Smoothing  SmoothingConfig  `yaml:"smoothing"`
	Retraction RetractionConfig `yaml:"retraction"`
}

// WallConfig mirrors wall.Settings.
type WallConfig struct {
	BeadingStrategyType string  `yaml:"beading_strategy_type"`
	FillOutlineGaps     bool    `yaml:"fill_outline_gaps"`
	MinFeatureSize      float64 `yaml:"min_feature_size"`
	MinBeadWidth        float64 `yaml:"min_bead_width"`
}

// SmoothingConfig mirrors the transform package's junction-smoothing
// parameters.
type SmoothingConfig struct {
	MaxResolution float64 `yaml:"max_resolution"`
	FluidAngle    float64 `yaml:"fluid_angle"`
}

// RetractionConfig mirrors plan.RetractionConfig.
type RetractionConfig struct {
	Distance                 float64 `yaml:"distance"`
	Speed                    float64 `yaml:"speed"`
	MinTravelDistance        float64 `yaml:"min_travel_distance"`
	BackPressureCompensation float64 `yaml:"back_pressure_compensation"`
}

// Default returns the engine's built-in defaults, overridden by whatever a
// loaded file specifies.
func Default() *Config {
	return &Config{
		Wall: WallConfig{
			BeadingStrategyType: string(wall.StrategyDistributed),
			FillOutlineGaps:     true,
			MinFeatureSize:      wall.SmallestSegment,
			MinBeadWidth:        wall.SmallestSegment,
		},
		Smoothing: SmoothingConfig{
			MaxResolution: wall.AllowedDistance,
			FluidAngle:    0.1,
		},
		Retraction: RetractionConfig{
			Distance:                 1.0,
			Speed:                    40,
			MinTravelDistance:        2000,
			BackPressureCompensation: 1.0,
		},
	}
}

// Load reads a YAML config file at path, starting from Default and
// overriding whichever fields the file sets.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// WallSettings converts the loaded wall configuration to wall.Settings.
func (c *Config) WallSettings() wall.Settings {
	return wall.Settings{
		BeadingStrategyType: wall.BeadingStrategyType(c.Wall.BeadingStrategyType),
		FillOutlineGaps:     c.Wall.FillOutlineGaps,
		MinFeatureSize:      c.Wall.MinFeatureSize,
		MinBeadWidth:        c.Wall.MinBeadWidth,
	}
}

// PlanRetractionConfig converts the loaded retraction configuration to
// plan.RetractionConfig.
func (c *Config) PlanRetractionConfig() plan.RetractionConfig {
	return plan.RetractionConfig{
		Distance:                 c.Retraction.Distance,
		Speed:                    c.Retraction.Speed,
		MinTravelDistance:        c.Retraction.MinTravelDistance,
		BackPressureCompensation: c.Retraction.BackPressureCompensation,
	}
}
