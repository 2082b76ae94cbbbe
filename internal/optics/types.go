package optics

// Component selects the anisotropy component of a refractive index.
// Isotropic materials ignore it.
type Component int

const (
	ComponentX Component = iota + 1
	ComponentY
	ComponentZ
)

// IndexFunc computes the complex refractive index at each frequency.
// It returns one value per input frequency.
type IndexFunc func(freqs []float64, component Component) ([]complex128, error)

// Material provides a complex refractive index as a function of frequency.
// A material may be shared by any number of layers.
type Material interface {
	Name() string
	Index(freqs []float64, component Component) ([]complex128, error)
}

// Cloner is an optional material capability. Materials that implement it
// can be deep-copied during periodic structure construction; materials
// that do not (e.g. handles on a solver-side database entry) are shared
// by reference instead.
type Cloner interface {
	Clone() Material
}

// Structure is anything exposing per-layer refractive index and thickness:
// a single layer or a whole multilayer. Index returns one row per layer,
// each row holding one value per frequency. Thickness returns one
// non-negative entry per layer.
type Structure interface {
	Index(freqs []float64, component Component) ([][]complex128, error)
	Thickness() []float64
}

// Options carries backend-specific engine options. Engines ignore keys
// they do not understand.
type Options map[string]any

// RawResult is a solver-defined output bundle. The core imposes no schema;
// the only requirement is that it be consumable by the matching Formatter.
// By convention coordinate axes are []float64 and data variables are
// []float64 or []complex128 flattened row-major over the axes.
type RawResult map[string]any

// Engine is a pluggable physics solver. Simulate must be a pure function
// of its inputs: it queries the structure's index and thickness, runs the
// backend, and returns the raw output. Implementations may hold an
// expensive session resource but no hidden state affecting results.
type Engine interface {
	Simulate(s Structure, freqs, angles []float64, opts Options) (RawResult, error)
}

// Formatter converts an engine's raw output into a structured result.
// An unrecognized output selector is a configuration error
// ([ErrUnknownOutput]).
type Formatter interface {
	Format(raw RawResult) (any, error)
}
