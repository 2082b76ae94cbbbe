package stack

import (
	"fmt"
	"strings"

	"github.com/arvi-k/optisim/internal/material"
	"github.com/arvi-k/optisim/internal/optics"
)

// propertyNames maps the friendly snake_case property names used
// throughout this module to the solver's spelled-out names.
var propertyNames = map[string]string{
	"permittivity":      "Permittivity",
	"lorentz_strength":  "Lorentz Permittivity",
	"lorentz_resonance": "Lorentz Resonance",
	"lorentz_linewidth": "Lorentz Linewidth",
	"mesh_order":        "Mesh Order",
	"anisotropy":        "Anisotropy",
	"refractive_index":  "Refractive Index",
	"imaginary_index":   "Imaginary Refractive Index",
	"color":             "Color",
	"tolerance":         "Tolerance",
	"max_coefficients":  "Max Coefficients",
	"frequency_min":     "Frequency Min",
	"frequency_max":     "Frequency Max",
	"improve_stability": "Improve Numerical Stability",
	"make_fit_passive":  "Make Fit Passive",
	"specify_fit_range": "Specify Fit Range",
	"use_in_simulation": "Use In Simulation",
}

// PropertyName translates a friendly property name to the solver's
// form. Unmapped names pass through title-cased, so new solver
// properties work without a table entry.
func PropertyName(friendly string) string {
	if name, ok := propertyNames[friendly]; ok {
		return name
	}
	words := strings.Split(friendly, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Material references a named entry in the solver's material database.
// Its index is sampled live from the solver, so edits to the database
// entry show up on the next query. It deliberately has no Clone: two
// handles to the same name are the same material.
type Material struct {
	session Session
	name    string
}

// NewMaterial wraps an existing database entry.
func NewMaterial(session Session, name string) *Material {
	return &Material{session: session, name: name}
}

// AddMaterial creates a database entry of the given solver kind and
// returns a handle to it.
func AddMaterial(session Session, kind, name string) (*Material, error) {
	if err := session.AddMaterial(kind, name); err != nil {
		return nil, err
	}
	return NewMaterial(session, name), nil
}

func (m *Material) Name() string { return m.name }

func (m *Material) Index(freqs []float64, component optics.Component) ([]complex128, error) {
	return m.session.GetIndex(m.name, freqs, component)
}

// Set writes one property, translating the friendly name.
func (m *Material) Set(property string, value any) error {
	return m.session.SetMaterial(m.name, PropertyName(property), value)
}

// Get reads one property, translating the friendly name.
func (m *Material) Get(property string) (any, error) {
	return m.session.GetMaterial(m.name, PropertyName(property))
}

// Delete removes the database entry. The handle is dead afterwards.
func (m *Material) Delete() error {
	return m.session.DeleteMaterial(m.name)
}

// Oscillator pushes a local Lorentz oscillator model into the solver's
// material database so solver-side routines can sample it.
type Oscillator struct {
	*Material
	Model *material.LorentzOscillator
}

// AddOscillator creates a solver Lorentz material from the local model
// and writes its parameters. The solver parameterizes the oscillator as
// a background permittivity plus a resonance strength, so the local
// density/susceptibility form is converted on the way in.
func AddOscillator(session Session, name string, model *material.LorentzOscillator) (*Oscillator, error) {
	mat, err := AddMaterial(session, "lorentz", name)
	if err != nil {
		return nil, err
	}
	o := &Oscillator{Material: mat, Model: model}
	if err := o.Push(); err != nil {
		return nil, err
	}
	return o, nil
}

// Push writes the current model parameters to the solver entry.
func (o *Oscillator) Push() error {
	w0 := o.Model.Resonance
	if w0 == 0 {
		return fmt.Errorf("stack: oscillator %q has zero resonance frequency", o.Name())
	}
	props := map[string]any{
		"permittivity":      1 + o.Model.Susceptibility,
		"lorentz_strength":  o.Model.PlasmaFrequencySquared() / (w0 * w0),
		"lorentz_resonance": w0,
		"lorentz_linewidth": o.Model.Linewidth,
	}
	for property, value := range props {
		if err := o.Set(property, value); err != nil {
			return err
		}
	}
	return nil
}
