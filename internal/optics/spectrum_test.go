package optics

import (
	"math"
	"testing"
)

func TestSpectrumWavelengthsDerived(t *testing.T) {
	s := NewSpectrum([]float64{SpeedOfLight / 500e-9, SpeedOfLight / 600e-9})

	w := s.Wavelengths()
	if len(w) != 2 {
		t.Fatalf("expected 2 wavelengths, got %d", len(w))
	}
	if math.Abs(w[0]-500e-9) > 1e-15 {
		t.Errorf("expected 500nm, got %g", w[0])
	}
	if math.Abs(w[1]-600e-9) > 1e-15 {
		t.Errorf("expected 600nm, got %g", w[1])
	}
}

func TestSpectrumCacheInvalidation(t *testing.T) {
	s := NewSpectrum([]float64{SpeedOfLight / 500e-9})

	first := s.Wavelengths()
	second := s.Wavelengths()
	if &first[0] != &second[0] {
		t.Error("expected cached wavelength slice to be reused")
	}

	s.SetFrequencies([]float64{SpeedOfLight / 700e-9})
	w := s.Wavelengths()
	if math.Abs(w[0]-700e-9) > 1e-15 {
		t.Errorf("expected 700nm after frequency write, got %g", w[0])
	}
}

func TestSpectrumSetWavelengthsUpdatesFrequencies(t *testing.T) {
	s := NewSpectrum(nil)
	s.SetWavelengths([]float64{500e-9})

	f := s.Frequencies()
	if len(f) != 1 {
		t.Fatalf("expected 1 frequency, got %d", len(f))
	}
	expected := SpeedOfLight / 500e-9
	if math.Abs(f[0]-expected) > 1 {
		t.Errorf("expected frequency %g, got %g", expected, f[0])
	}

	w := s.Wavelengths()
	if math.Abs(w[0]-500e-9) > 1e-15 {
		t.Errorf("round trip wavelength mismatch: %g", w[0])
	}
}

func TestSpectrumCustomSpeed(t *testing.T) {
	s := &Spectrum{C: 1.0}
	s.SetFrequencies([]float64{4.0})

	w := s.Wavelengths()
	if w[0] != 0.25 {
		t.Errorf("expected wavelength 0.25 with c=1, got %g", w[0])
	}
}

func TestSpectrumEmpty(t *testing.T) {
	s := NewSpectrum(nil)
	if s.Wavelengths() != nil {
		t.Error("expected nil wavelengths for empty spectrum")
	}
}
