// Package optics defines the core capability contracts for 1D layered
// optical media simulation.
//
// The package is deliberately backend-free: it specifies what a material,
// structure, engine, and formatter must provide, and leaves the physics to
// pluggable implementations:
//
//   - [Material]: complex refractive index as a function of frequency
//   - [Structure]: per-layer index and thickness (a Layer or Multilayer)
//   - [Engine]: pluggable physics solver producing a raw result
//   - [Formatter]: post-processor turning a raw result into analyzable form
//   - [Spectrum]: canonical frequency axis with a derived wavelength view
//
// # Sign Convention
//
// Refractive indices are complex128 with a positive imaginary part meaning
// a lossy medium.
//
// # Thread Safety
//
// Nothing in this package is safe for concurrent mutation. Materials and
// layers may be aliased across structures; callers mutating shared objects
// from multiple goroutines must serialize externally.
package optics
