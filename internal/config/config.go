package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultSpheres   = 100
	DefaultStrength  = 8.0
	DefaultThreshold = 15.0
)

type Config struct {
	Spheres   int     `yaml:"spheres"`
	Dt        float64 `yaml:"dt"`
	Duration  float64 `yaml:"duration"`
	Seed      int64   `yaml:"seed"`
	Strength  float64 `yaml:"shake_strength"`
	Threshold float64 `yaml:"motion_threshold"`

	// Trace optionally names a yaml motion trace replayed during the run.
	Trace string `yaml:"trace,omitempty"`

	// Triggers lists simulation times of scripted manual shakes.
	Triggers []float64 `yaml:"triggers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Spheres:   DefaultSpheres,
		Dt:        DefaultDt,
		Duration:  DefaultDuration,
		Strength:  DefaultStrength,
		Threshold: DefaultThreshold,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
