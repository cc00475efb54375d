// Package config handles run configuration: yaml files, defaults, and named
// presets. Precedence in the CLI is flags > config file > preset > defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spheresim/internal/engine"
)

const (
	DefaultParticles  = 100
	DefaultDimensions = 3
	DefaultSteps      = 1000
	DefaultZoneWidth  = 5.0
	DefaultDt         = 0.01
	DefaultSeed       = 1
)

type Config struct {
	Particles    int     `yaml:"particles"`
	Dimensions   int     `yaml:"dimensions"`
	Steps        int     `yaml:"steps"`
	ZoneWidth    float64 `yaml:"zone_width"`
	Topology     string  `yaml:"topology"`
	Integrator   string  `yaml:"integrator"`
	Dt           float64 `yaml:"dt"`
	Seed         int64   `yaml:"seed"`
	RecordStride int     `yaml:"record_stride"`
	MaxSnapshots int     `yaml:"max_snapshots"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:  DefaultParticles,
		Dimensions: DefaultDimensions,
		Steps:      DefaultSteps,
		ZoneWidth:  DefaultZoneWidth,
		Topology:   "circle",
		Integrator: "euler",
		Dt:         DefaultDt,
		Seed:       DefaultSeed,
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

// Engine maps the file config onto engine construction parameters. Validation
// happens in engine.New, not here.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Particles:    c.Particles,
		Dimensions:   c.Dimensions,
		ZoneWidth:    c.ZoneWidth,
		Topology:     c.Topology,
		Integrator:   c.Integrator,
		Dt:           c.Dt,
		Seed:         c.Seed,
		RecordStride: c.RecordStride,
		MaxSnapshots: c.MaxSnapshots,
	}
}
