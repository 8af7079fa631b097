package config

var Presets = map[string]*Config{
	"calm": {
		Spheres: 50, Dt: 0.01, Duration: 15.0,
		Strength: 3.0, Threshold: 25.0,
		Triggers: []float64{2.0},
	},
	"party": {
		Spheres: 100, Dt: 0.01, Duration: 20.0,
		Strength: 14.0, Threshold: 10.0,
		Triggers: []float64{1.0, 3.0, 5.0, 7.0, 9.0},
	},
	"turbulence": {
		Spheres: 100, Dt: 0.005, Duration: 30.0,
		Strength: 20.0, Threshold: 5.0,
		Triggers: []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
