package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/material"
	"github.com/arvi-k/optisim/internal/optics"
	"github.com/arvi-k/optisim/internal/stack"
	"github.com/arvi-k/optisim/internal/structure"
)

const (
	DefaultPoints        = 100
	DefaultPeriods       = 1
	DefaultMinWavelength = 400e-9
	DefaultMaxWavelength = 800e-9
)

type Config struct {
	Name      string           `yaml:"name"`
	Materials []MaterialConfig `yaml:"materials"`
	Structure StructureConfig  `yaml:"structure"`
	Spectrum  SpectrumConfig   `yaml:"spectrum"`
	Angles    []float64        `yaml:"angles"`
	Engine    EngineConfig     `yaml:"engine"`
	Output    OutputConfig     `yaml:"output"`
}

type MaterialConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`
	// constant
	Index     float64 `yaml:"index"`
	IndexImag float64 `yaml:"index_imag"`
	// lorentz
	Resonance      float64 `yaml:"resonance"`
	Linewidth      float64 `yaml:"linewidth"`
	Density        float64 `yaml:"density"`
	Susceptibility float64 `yaml:"susceptibility"`
	Approx         bool    `yaml:"approx"`
}

type LayerConfig struct {
	Material  string  `yaml:"material"`
	Thickness float64 `yaml:"thickness"`
}

type StructureConfig struct {
	Incident   LayerConfig   `yaml:"incident"`
	Exit       LayerConfig   `yaml:"exit"`
	UnitCell   []LayerConfig `yaml:"unit_cell"`
	Periods    int           `yaml:"periods"`
	CopyLayers bool          `yaml:"copy_layers"`
}

type SpectrumConfig struct {
	MinWavelength float64 `yaml:"min_wavelength"`
	MaxWavelength float64 `yaml:"max_wavelength"`
	MinFrequency  float64 `yaml:"min_frequency"`
	MaxFrequency  float64 `yaml:"max_frequency"`
	Points        int     `yaml:"points"`
}

type EngineConfig struct {
	Kind    string             `yaml:"kind"`
	Address string             `yaml:"address"`
	Options map[string]float64 `yaml:"options"`
}

type OutputConfig struct {
	Format      string `yaml:"format"`
	Absorptance bool   `yaml:"absorptance"`
	Norms       bool   `yaml:"norms"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: "etalon",
		Materials: []MaterialConfig{
			{Name: "glass", Kind: "constant", Index: 1.5},
		},
		Structure: StructureConfig{
			UnitCell:   []LayerConfig{{Material: "glass", Thickness: 100e-9}},
			Periods:    DefaultPeriods,
			CopyLayers: true,
		},
		Spectrum: SpectrumConfig{
			MinWavelength: DefaultMinWavelength,
			MaxWavelength: DefaultMaxWavelength,
			Points:        DefaultPoints,
		},
		Angles: []float64{0},
		Engine: EngineConfig{Kind: "rt", Address: "localhost:8577"},
		Output: OutputConfig{Format: "dataset", Absorptance: true},
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

// BuildMaterials instantiates every configured material. Remote
// materials need a live solver session; nil is an error only when one
// is configured.
func (c *Config) BuildMaterials(session stack.Session) (map[string]optics.Material, error) {
	out := make(map[string]optics.Material, len(c.Materials))
	for _, m := range c.Materials {
		switch m.Kind {
		case "constant", "":
			out[m.Name] = material.NewNamedConstant(complex(m.Index, m.IndexImag), m.Name)
		case "lorentz":
			osc := material.NewLorentzOscillator(m.Resonance, m.Linewidth, m.Density, m.Susceptibility)
			osc.Approx = m.Approx
			osc.SetName(m.Name)
			out[m.Name] = osc
		case "remote":
			if session == nil {
				return nil, fmt.Errorf("config: material %q needs a solver session", m.Name)
			}
			out[m.Name] = stack.NewMaterial(session, m.Name)
		default:
			return nil, fmt.Errorf("config: unknown material kind %q", m.Kind)
		}
	}
	return out, nil
}

// BuildStructure assembles the periodic stack from the material table.
func (c *Config) BuildStructure(materials map[string]optics.Material) (*structure.Multilayer, error) {
	layer := func(lc LayerConfig) (*structure.Layer, error) {
		if lc.Material == "" {
			return structure.NewLayer(nil, lc.Thickness)
		}
		m, ok := materials[lc.Material]
		if !ok {
			return nil, fmt.Errorf("config: undefined material %q", lc.Material)
		}
		return structure.FromMaterial(m, lc.Thickness)
	}

	incident, err := layer(c.Structure.Incident)
	if err != nil {
		return nil, err
	}
	exit, err := layer(c.Structure.Exit)
	if err != nil {
		return nil, err
	}
	cell := make([]*structure.Layer, 0, len(c.Structure.UnitCell))
	for _, lc := range c.Structure.UnitCell {
		l, err := layer(lc)
		if err != nil {
			return nil, err
		}
		cell = append(cell, l)
	}

	periods := c.Structure.Periods
	if periods == 0 {
		periods = DefaultPeriods
	}
	return structure.FromUnitCell(cell, incident, exit, periods, c.Structure.CopyLayers), nil
}

// BuildSpectrum produces the sampling grid. A wavelength range wins
// over a frequency range when both are set.
func (c *Config) BuildSpectrum() (*optics.Spectrum, error) {
	points := c.Spectrum.Points
	if points == 0 {
		points = DefaultPoints
	}
	if c.Spectrum.MinWavelength > 0 && c.Spectrum.MaxWavelength > 0 {
		return optics.NewSpectrumFromWavelengths(linspace(c.Spectrum.MinWavelength, c.Spectrum.MaxWavelength, points)), nil
	}
	if c.Spectrum.MinFrequency > 0 && c.Spectrum.MaxFrequency > 0 {
		return optics.NewSpectrum(linspace(c.Spectrum.MinFrequency, c.Spectrum.MaxFrequency, points)), nil
	}
	return nil, fmt.Errorf("config: spectrum needs a wavelength or frequency range")
}

// BuildEngine wraps the session in the configured engine adapter.
func (c *Config) BuildEngine(session stack.Session) (optics.Engine, error) {
	switch c.Engine.Kind {
	case "rt", "":
		return &stack.RTEngine{Session: session}, nil
	case "field":
		return &stack.FieldEngine{Session: session}, nil
	case "combined":
		return &stack.CombinedEngine{Session: session}, nil
	default:
		return nil, fmt.Errorf("config: unknown engine kind %q", c.Engine.Kind)
	}
}

// BuildFormatter picks the formatter matching the engine kind.
func (c *Config) BuildFormatter() (optics.Formatter, error) {
	var output format.Output
	switch c.Output.Format {
	case "raw", "":
		output = format.OutputRaw
	case "dataset":
		output = format.OutputDataset
	case "array":
		output = format.OutputArray
	default:
		return nil, fmt.Errorf("%w: %q", optics.ErrUnknownOutput, c.Output.Format)
	}

	switch c.Engine.Kind {
	case "field":
		return &format.FieldFormatter{Output: output, Norms: c.Output.Norms}, nil
	case "combined":
		return &format.CombinedFormatter{
			RT:    format.RTFormatter{Output: output, Absorptance: c.Output.Absorptance},
			Field: format.FieldFormatter{Output: output, Norms: c.Output.Norms},
		}, nil
	default:
		return &format.RTFormatter{Output: output, Absorptance: c.Output.Absorptance}, nil
	}
}

// BuildOptions converts the engine option block.
func (c *Config) BuildOptions() optics.Options {
	if len(c.Engine.Options) == 0 {
		return nil
	}
	opts := make(optics.Options, len(c.Engine.Options))
	for k, v := range c.Engine.Options {
		opts[k] = v
	}
	return opts
}

// BuildAngles returns the incidence angles, defaulting to normal.
func (c *Config) BuildAngles() []float64 {
	if len(c.Angles) == 0 {
		return []float64{0}
	}
	return c.Angles
}

func linspace(min, max float64, points int) []float64 {
	if points == 1 {
		return []float64{min}
	}
	out := make([]float64, points)
	step := (max - min) / float64(points-1)
	for i := range out {
		out[i] = min + float64(i)*step
	}
	return out
}
