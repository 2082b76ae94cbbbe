// Package stack drives an external stack solver: a session protocol for
// the solver's RT and field routines and its material database, plus
// engine adapters that plug the solver into a simulation.
package stack

import (
	"github.com/arvi-k/optisim/internal/optics"
)

// Session is an open connection to a stack solver. Implementations are
// not required to be safe for concurrent use; drive one session from
// one goroutine.
type Session interface {
	// StackRT computes reflection and transmission coefficients for a
	// stack described by its index matrix (one row per layer, one column
	// per frequency) and thickness vector, over the given frequencies
	// and incidence angles in degrees.
	StackRT(index [][]complex128, thickness, freqs, angles []float64) (optics.RawResult, error)

	// StackField computes field profiles through the stack. args is the
	// solver's positional tail: resolution, then min, then max, each
	// optional but only in that order.
	StackField(index [][]complex128, thickness, freqs, angles []float64, args ...float64) (optics.RawResult, error)

	// GetIndex samples the refractive index of a named material in the
	// solver's database.
	GetIndex(name string, freqs []float64, component optics.Component) ([]complex128, error)

	// AddMaterial creates a named material of the given solver kind.
	AddMaterial(kind, name string) error
	// SetMaterial sets one property on a named material.
	SetMaterial(name, property string, value any) error
	// GetMaterial reads one property of a named material.
	GetMaterial(name, property string) (any, error)
	// DeleteMaterial removes a named material.
	DeleteMaterial(name string) error

	Close() error
}
