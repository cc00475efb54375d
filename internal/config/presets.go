package config

import "sort"

var Presets = map[string]*Config{
	"ring": {
		Particles: 100, Dimensions: 3, Steps: 1000, ZoneWidth: 5.0,
		Topology: "circle", Integrator: "euler", Dt: 0.01, Seed: 1,
	},
	"highdim": {
		Particles: 100, Dimensions: 6, Steps: 1000, ZoneWidth: 5.0,
		Topology: "circle", Integrator: "euler", Dt: 0.01, Seed: 1,
	},
	"plane": {
		Particles: 64, Dimensions: 2, Steps: 2000, ZoneWidth: 3.0,
		Topology: "circle", Integrator: "euler", Dt: 0.01, Seed: 1,
	},
	"global": {
		Particles: 50, Dimensions: 4, Steps: 500, ZoneWidth: 2.0,
		Topology: "full", Integrator: "heun", Dt: 0.01, Seed: 1,
	},
	"lattice": {
		Particles: 81, Dimensions: 3, Steps: 2000, ZoneWidth: 2.0,
		Topology: "grid", Integrator: "euler", Dt: 0.01, Seed: 1,
	},
	"marathon": {
		Particles: 100, Dimensions: 3, Steps: 100000, ZoneWidth: 5.0,
		Topology: "circle", Integrator: "euler", Dt: 0.01, Seed: 1,
		RecordStride: 100, MaxSnapshots: 2000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
