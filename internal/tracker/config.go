package tracker

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region file-config

// fileConfig mirrors Config with YAML tags. Omitted fields keep their
// defaults.
type fileConfig struct {
	WarmupSessions   *int     `yaml:"warmup_sessions"`
	AnomalyThreshold *float64 `yaml:"anomaly_threshold"`
	MaxPredictions   *int     `yaml:"max_predictions"`
	MinProbability   *float64 `yaml:"min_probability"`
	AxisLength       *float64 `yaml:"axis_length"`
}

// #endregion file-config

// #region load-config

// LoadConfig reads a YAML tuning file and overlays it on the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if fc.WarmupSessions != nil {
		cfg.WarmupSessions = *fc.WarmupSessions
	}
	if fc.AnomalyThreshold != nil {
		cfg.AnomalyThreshold = *fc.AnomalyThreshold
	}
	if fc.MaxPredictions != nil {
		cfg.MaxPredictions = *fc.MaxPredictions
	}
	if fc.MinProbability != nil {
		cfg.MinProbability = *fc.MinProbability
	}
	if fc.AxisLength != nil {
		cfg.AxisLength = *fc.AxisLength
	}

	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.WarmupSessions < 0 {
		return fmt.Errorf("warmup_sessions must be >= 0, got %d", cfg.WarmupSessions)
	}
	if cfg.AnomalyThreshold < 0 || cfg.AnomalyThreshold > 1 {
		return fmt.Errorf("anomaly_threshold must be in [0, 1], got %g", cfg.AnomalyThreshold)
	}
	if cfg.MaxPredictions <= 0 {
		return fmt.Errorf("max_predictions must be > 0, got %d", cfg.MaxPredictions)
	}
	if cfg.MinProbability < 0 || cfg.MinProbability > 1 {
		return fmt.Errorf("min_probability must be in [0, 1], got %g", cfg.MinProbability)
	}
	if cfg.AxisLength <= 0 {
		return fmt.Errorf("axis_length must be > 0, got %g", cfg.AxisLength)
	}
	return nil
}

// #endregion load-config
