package optics

// Spectrum gives its owner a spectral axis. Frequency is the single
// canonical value; wavelength is a derived view computed as c/f and
// cached until the next frequency write. Assigning wavelengths converts
// and stores into frequencies, so the two can never disagree.
type Spectrum struct {
	// C is the speed of light used for conversion. Zero means
	// [SpeedOfLight].
	C float64

	frequencies []float64
	wavelengths []float64
}

// NewSpectrum returns a spectrum with the given canonical frequencies.
func NewSpectrum(frequencies []float64) *Spectrum {
	return &Spectrum{frequencies: frequencies}
}

// NewSpectrumFromWavelengths converts the given wavelengths to
// frequencies and stores those.
func NewSpectrumFromWavelengths(wavelengths []float64) *Spectrum {
	s := &Spectrum{}
	s.SetWavelengths(wavelengths)
	return s
}

// Frequencies returns the canonical frequency axis.
func (s *Spectrum) Frequencies() []float64 {
	return s.frequencies
}

// SetFrequencies replaces the canonical axis and invalidates the cached
// wavelength view.
func (s *Spectrum) SetFrequencies(frequencies []float64) {
	s.frequencies = frequencies
	s.wavelengths = nil
}

// Wavelengths returns the derived wavelength view, computing and caching
// it on first access after a frequency write. Returns nil when no
// frequencies are set.
func (s *Spectrum) Wavelengths() []float64 {
	if s.wavelengths == nil && s.frequencies != nil {
		s.wavelengths = reciprocalScale(s.frequencies, s.speed())
	}
	return s.wavelengths
}

// SetWavelengths converts the given wavelengths to frequencies and
// overwrites the canonical axis. The cached wavelength view is
// invalidated rather than stored, so a later read reflects exactly what
// the canonical frequencies imply.
func (s *Spectrum) SetWavelengths(wavelengths []float64) {
	s.frequencies = reciprocalScale(wavelengths, s.speed())
	s.wavelengths = nil
}

func (s *Spectrum) speed() float64 {
	if s.C != 0 {
		return s.C
	}
	return SpeedOfLight
}

// reciprocalScale maps each v to c/v. The same conversion works in both
// directions since f = c/lambda and lambda = c/f.
func reciprocalScale(values []float64, c float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = c / v
	}
	return out
}
