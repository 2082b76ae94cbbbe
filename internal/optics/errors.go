package optics

import "errors"

// Domain errors for structure and simulation operations.
var (
	// ErrNegativeThickness indicates an attempt to construct or mutate a
	// layer with thickness < 0. Negative thicknesses are rejected, never
	// clamped.
	ErrNegativeThickness = errors.New("optics: layer thickness must be non-negative")

	// ErrNilIndexFunc indicates an attempt to rebind a layer's index
	// function to nil.
	ErrNilIndexFunc = errors.New("optics: index function must not be nil")

	// ErrUnknownOutput indicates an unrecognized formatter output selector.
	ErrUnknownOutput = errors.New("optics: output format not recognised")

	// ErrNoStructure indicates a simulation run without a structure bound.
	ErrNoStructure = errors.New("optics: no structure configured")

	// ErrNoEngine indicates a simulation run without an engine bound.
	ErrNoEngine = errors.New("optics: no engine configured")

	// ErrEmptySpectrum indicates a simulation run without frequencies.
	ErrEmptySpectrum = errors.New("optics: no frequencies configured")

	// ErrMissingVariable indicates a raw result lacking a variable the
	// formatter was configured to extract.
	ErrMissingVariable = errors.New("optics: raw result missing variable")
)
