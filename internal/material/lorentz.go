package material

import (
	"math"

	"github.com/arvi-k/optisim/internal/optics"
)

// LorentzOscillator models a dielectric with a single Lorentz resonance.
// The relative permittivity is
//
//	eps(w) = 1 + chi + wp^2 * (w0^2 - w^2 + i*gamma*w) / ((w0^2 - w^2)^2 + (gamma*w)^2)
//
// with plasma frequency wp^2 = N*e^2/(eps0*m0). Approx switches to the
// Lorentzian approximation valid near resonance.
type LorentzOscillator struct {
	// Resonance is the angular resonance frequency w0, rad/s.
	Resonance float64
	// Linewidth is the damping rate gamma, rad/s.
	Linewidth float64
	// Density is the oscillator number density N, 1/m^3.
	Density float64
	// Susceptibility is the background susceptibility chi.
	Susceptibility float64
	// Approx selects the Lorentzian approximation of eps near resonance.
	Approx bool

	// Per-instance constant overrides; zero means the package defaults.
	Epsilon0     float64
	ElectronQ    float64
	ElectronMass float64

	name string
}

// NewLorentzOscillator returns an oscillator material with the given
// angular resonance frequency, linewidth, oscillator density, and
// background susceptibility.
func NewLorentzOscillator(resonance, linewidth, density, susceptibility float64) *LorentzOscillator {
	return &LorentzOscillator{
		Resonance:      resonance,
		Linewidth:      linewidth,
		Density:        density,
		Susceptibility: susceptibility,
		name:           "lorentz",
	}
}

func (m *LorentzOscillator) Name() string { return m.name }

// SetName renames the material.
func (m *LorentzOscillator) SetName(name string) { m.name = name }

// PlasmaFrequencySquared returns wp^2 = N*e^2/(eps0*m0).
func (m *LorentzOscillator) PlasmaFrequencySquared() float64 {
	eps0 := m.Epsilon0
	if eps0 == 0 {
		eps0 = optics.VacuumPermittivity
	}
	e := m.ElectronQ
	if e == 0 {
		e = optics.ElectronCharge
	}
	m0 := m.ElectronMass
	if m0 == 0 {
		m0 = optics.ElectronMass
	}
	return m.Density * e * e / (eps0 * m0)
}

// Epsilon returns the real and imaginary parts of the relative
// permittivity at angular frequency w.
func (m *LorentzOscillator) Epsilon(w float64) (eps1, eps2 float64) {
	w0 := m.Resonance
	gamma := m.Linewidth
	chi := m.Susceptibility
	wp2 := m.PlasmaFrequencySquared()

	if m.Approx {
		epsInf := 1 + chi
		epsSt := 1 + chi + wp2/(w0*w0)
		dw := w - w0
		denom := 4*dw*dw + gamma*gamma
		eps1 = epsInf - (epsSt-epsInf)*(2*w0*dw)/denom
		eps2 = (epsSt - epsInf) * gamma * w0 / denom
		return eps1, eps2
	}

	d := w0*w0 - w*w
	denom := d*d + gamma*gamma*w*w
	eps1 = 1 + chi + wp2*d/denom
	eps2 = wp2 * gamma * w / denom
	return eps1, eps2
}

// Index evaluates the complex refractive index n + ik at each frequency
// (plain frequency, not angular; w = 2*pi*f). Positive k means lossy.
func (m *LorentzOscillator) Index(freqs []float64, _ optics.Component) ([]complex128, error) {
	out := make([]complex128, len(freqs))
	for i, f := range freqs {
		w := 2 * math.Pi * f
		eps1, eps2 := m.Epsilon(w)
		mag := math.Sqrt(eps1*eps1 + eps2*eps2)
		n := math.Sqrt((eps1 + mag) / 2)
		k := math.Sqrt((-eps1 + mag) / 2)
		out[i] = complex(n, k)
	}
	return out, nil
}

// Clone returns an independent copy.
func (m *LorentzOscillator) Clone() optics.Material {
	cp := *m
	return &cp
}
