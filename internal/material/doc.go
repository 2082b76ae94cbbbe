// Package material provides closed-form material models implementing the
// [optics.Material] capability:
//
//   - [Constant]: frequency-independent complex index
//   - [LorentzOscillator]: single Lorentz resonance dielectric function
//
// Solver-database-backed materials live in the stack package.
package material
