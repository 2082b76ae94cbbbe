package config

// Presets are ready-to-run stack configurations. The Bragg mirrors use
// quarter-wave layers at a 600 nm design wavelength.
var Presets = map[string]*Config{
	"etalon": {
		Name: "etalon",
		Materials: []MaterialConfig{
			{Name: "glass", Kind: "constant", Index: 1.5},
		},
		Structure: StructureConfig{
			UnitCell:   []LayerConfig{{Material: "glass", Thickness: 1e-6}},
			Periods:    1,
			CopyLayers: true,
		},
		Spectrum: SpectrumConfig{MinWavelength: 400e-9, MaxWavelength: 800e-9, Points: 200},
		Angles:   []float64{0},
		Engine:   EngineConfig{Kind: "rt"},
		Output:   OutputConfig{Format: "dataset", Absorptance: true},
	},
	"bragg": {
		Name: "bragg",
		Materials: []MaterialConfig{
			{Name: "tio2", Kind: "constant", Index: 2.4},
			{Name: "sio2", Kind: "constant", Index: 1.5},
		},
		Structure: StructureConfig{
			Exit: LayerConfig{Material: "sio2"},
			UnitCell: []LayerConfig{
				{Material: "tio2", Thickness: 62.5e-9},
				{Material: "sio2", Thickness: 100e-9},
			},
			Periods:    10,
			CopyLayers: true,
		},
		Spectrum: SpectrumConfig{MinWavelength: 400e-9, MaxWavelength: 800e-9, Points: 400},
		Angles:   []float64{0, 15, 30, 45},
		Engine:   EngineConfig{Kind: "rt"},
		Output:   OutputConfig{Format: "dataset", Absorptance: true},
	},
	"bragg_field": {
		Name: "bragg_field",
		Materials: []MaterialConfig{
			{Name: "tio2", Kind: "constant", Index: 2.4},
			{Name: "sio2", Kind: "constant", Index: 1.5},
		},
		Structure: StructureConfig{
			Exit: LayerConfig{Material: "sio2"},
			UnitCell: []LayerConfig{
				{Material: "tio2", Thickness: 62.5e-9},
				{Material: "sio2", Thickness: 100e-9},
			},
			Periods:    10,
			CopyLayers: true,
		},
		Spectrum: SpectrumConfig{MinWavelength: 550e-9, MaxWavelength: 650e-9, Points: 11},
		Angles:   []float64{0},
		Engine:   EngineConfig{Kind: "field", Options: map[string]float64{"resolution": 1000}},
		Output:   OutputConfig{Format: "dataset", Norms: true},
	},
	"lorentz_slab": {
		Name: "lorentz_slab",
		Materials: []MaterialConfig{
			{
				Name: "osc", Kind: "lorentz",
				Resonance: 3.14e15, Linewidth: 1e13,
				Density: 1e28, Susceptibility: 0.2,
			},
		},
		Structure: StructureConfig{
			UnitCell:   []LayerConfig{{Material: "osc", Thickness: 500e-9}},
			Periods:    1,
			CopyLayers: true,
		},
		Spectrum: SpectrumConfig{MinFrequency: 3e14, MaxFrequency: 7e14, Points: 300},
		Angles:   []float64{0},
		Engine:   EngineConfig{Kind: "rt"},
		Output:   OutputConfig{Format: "dataset", Absorptance: true},
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
