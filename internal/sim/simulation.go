// Package sim orchestrates running a pluggable optics engine over a
// structure and post-processing the raw output.
package sim

import (
	"github.com/arvi-k/optisim/internal/optics"
)

// Simulation manages one simulation of light propagating through a
// structure over a spectral and angular grid, powered by a pluggable
// engine. The most recent result is cached on the simulation until the
// next successful run.
//
// Runs are synchronous and blocking; a long engine call cannot be
// interrupted here. Cancellation, if needed, belongs to the engine
// implementation.
type Simulation struct {
	Structure optics.Structure
	Engine    optics.Engine
	Spectrum  *optics.Spectrum
	// Angles of incidence in degrees. Defaults to normal incidence.
	Angles []float64
	// Formatter post-processes raw engine output. Nil means results stay
	// raw.
	Formatter optics.Formatter

	data any
}

// New returns a configured simulation at normal incidence.
func New(structure optics.Structure, engine optics.Engine, spectrum *optics.Spectrum) *Simulation {
	return &Simulation{
		Structure: structure,
		Engine:    engine,
		Spectrum:  spectrum,
		Angles:    []float64{0},
	}
}

// RunParams are per-call overrides for Simulate. Any zero field falls
// back to the value stored on the Simulation.
type RunParams struct {
	Structure   optics.Structure
	Engine      optics.Engine
	Frequencies []float64
	Angles      []float64
	Formatter   optics.Formatter
	// Options are passed through to the engine.
	Options optics.Options
	// Discard skips retaining the result on the Simulation.
	Discard bool
}

// Run invokes the engine over the structure at the given grid. It is the
// free-function form of a simulation step with no caching.
func Run(structure optics.Structure, engine optics.Engine, freqs, angles []float64, opts optics.Options) (optics.RawResult, error) {
	return engine.Simulate(structure, freqs, angles, opts)
}

// Simulate resolves per-call overrides against the stored configuration,
// runs the engine, applies the formatter if one is bound, and returns
// the result. Unless p.Discard is set, the result also overwrites the
// cached data. Errors from the engine or formatter propagate unchanged
// and leave the cached data at its prior value.
func (s *Simulation) Simulate(p RunParams) (any, error) {
	structure := p.Structure
	if structure == nil {
		structure = s.Structure
	}
	engine := p.Engine
	if engine == nil {
		engine = s.Engine
	}
	freqs := p.Frequencies
	if freqs == nil && s.Spectrum != nil {
		freqs = s.Spectrum.Frequencies()
	}
	angles := p.Angles
	if angles == nil {
		angles = s.Angles
	}
	formatter := p.Formatter
	if formatter == nil {
		formatter = s.Formatter
	}

	if structure == nil {
		return nil, optics.ErrNoStructure
	}
	if engine == nil {
		return nil, optics.ErrNoEngine
	}
	if len(freqs) == 0 {
		return nil, optics.ErrEmptySpectrum
	}

	raw, err := Run(structure, engine, freqs, angles, p.Options)
	if err != nil {
		return nil, err
	}

	var result any = raw
	if formatter != nil {
		result, err = formatter.Format(raw)
		if err != nil {
			return nil, err
		}
	}

	if !p.Discard {
		s.data = result
	}
	return result, nil
}

// Data returns the most recently retained result, nil before the first
// successful run.
func (s *Simulation) Data() any { return s.data }
