// Package structure models 1D layered optical media.
//
// A [Layer] binds an index-providing capability to a non-negative
// thickness. A [Multilayer] is an ordered sequence of layers and
// satisfies the same [optics.Structure] capability, so composite stacks
// are structures like any layer.
//
// # Copy vs Alias
//
// [FromUnitCell] builds periodic stacks in one of two explicit ownership
// modes. With copying, every inserted layer is an independent deep copy.
// Without, the same *Layer pointers appear in every period and may be
// shared across structures; mutating a shared layer (or a material
// referenced by several layers) is visible everywhere at once. The
// aliased mode is a deliberate memory/flexibility trade-off, not a bug.
package structure
