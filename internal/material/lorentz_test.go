package material

import (
	"math"
	"testing"

	"github.com/arvi-k/optisim/internal/optics"
)

func TestLorentzStaticLimit(t *testing.T) {
	m := NewLorentzOscillator(1e15, 1e13, 1e27, 0.5)

	// At w=0 the exact form reduces to eps1 = 1 + chi + wp^2/w0^2, eps2 = 0.
	eps1, eps2 := m.Epsilon(0)
	expected := 1 + 0.5 + m.PlasmaFrequencySquared()/(1e15*1e15)
	if math.Abs(eps1-expected) > 1e-9*expected {
		t.Errorf("static eps1 = %g, want %g", eps1, expected)
	}
	if eps2 != 0 {
		t.Errorf("static eps2 = %g, want 0", eps2)
	}
}

func TestLorentzLossyAtResonance(t *testing.T) {
	m := NewLorentzOscillator(1e15, 1e13, 1e27, 0)

	idx, err := m.Index([]float64{1e15 / (2 * math.Pi)}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if imag(idx[0]) <= 0 {
		t.Errorf("expected lossy index at resonance, got k = %g", imag(idx[0]))
	}
	if real(idx[0]) < 0 {
		t.Errorf("expected non-negative real index, got n = %g", real(idx[0]))
	}
}

func TestLorentzApproxNearResonance(t *testing.T) {
	exact := NewLorentzOscillator(1e15, 1e12, 1e26, 0)
	approx := NewLorentzOscillator(1e15, 1e12, 1e26, 0)
	approx.Approx = true

	// The Lorentzian approximation should track the exact absorption
	// close to resonance.
	w := 1e15 + 5e11
	_, e2 := exact.Epsilon(w)
	_, a2 := approx.Epsilon(w)
	if e2 == 0 {
		t.Fatal("expected absorption near resonance")
	}
	if math.Abs(e2-a2)/e2 > 0.05 {
		t.Errorf("approx eps2 = %g deviates from exact %g by more than 5%%", a2, e2)
	}
}

func TestLorentzConstantOverride(t *testing.T) {
	m := NewLorentzOscillator(1e15, 1e13, 1e27, 0)
	base := m.PlasmaFrequencySquared()

	m.Epsilon0 = 2 * optics.VacuumPermittivity
	if got := m.PlasmaFrequencySquared(); math.Abs(got-base/2) > 1e-9*base {
		t.Errorf("expected halved wp^2 with doubled eps0, got %g (base %g)", got, base)
	}
}
