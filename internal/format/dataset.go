// Package format reshapes raw engine output into labelled,
// coordinate-aware datasets and derives secondary quantities from them.
package format

import (
	"fmt"

	"github.com/arvi-k/optisim/internal/optics"
)

// Array is an n-dimensional variable stored row-major. Exactly one of
// Real and Complex is populated.
type Array struct {
	Dims    []string
	Shape   []int
	Real    []float64
	Complex []complex128
}

// Size returns the number of elements the shape implies.
func (a *Array) Size() int {
	n := 1
	for _, s := range a.Shape {
		n *= s
	}
	return n
}

// IsComplex reports whether the array holds complex values.
func (a *Array) IsComplex() bool { return a.Complex != nil }

// Dataset is a collection of named variables sharing named coordinate
// axes, the wire-free analogue of a labelled n-dimensional table.
// Warnings collect non-fatal conditions hit while building or deriving;
// they are never silently dropped.
type Dataset struct {
	Coords   map[string][]float64
	Vars     map[string]*Array
	Warnings []string
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Coords: make(map[string][]float64),
		Vars:   make(map[string]*Array),
	}
}

// SetCoord registers a coordinate axis.
func (d *Dataset) SetCoord(name string, values []float64) {
	d.Coords[name] = values
}

// AddVar registers a variable after checking its shape against the
// registered coordinates and its data length against the shape.
func (d *Dataset) AddVar(name string, a *Array) error {
	if len(a.Dims) != len(a.Shape) {
		return fmt.Errorf("format: variable %q has %d dims but %d shape entries", name, len(a.Dims), len(a.Shape))
	}
	for i, dim := range a.Dims {
		coord, ok := d.Coords[dim]
		if !ok {
			continue
		}
		if len(coord) != a.Shape[i] {
			return fmt.Errorf("format: variable %q dim %q has size %d, coordinate has %d values", name, dim, a.Shape[i], len(coord))
		}
	}
	n := a.Size()
	if a.IsComplex() {
		if len(a.Complex) != n {
			return fmt.Errorf("format: variable %q has %d values, shape implies %d", name, len(a.Complex), n)
		}
	} else if len(a.Real) != n {
		return fmt.Errorf("format: variable %q has %d values, shape implies %d", name, len(a.Real), n)
	}
	d.Vars[name] = a
	return nil
}

// Warn records a non-fatal condition.
func (d *Dataset) Warn(format string, args ...any) {
	d.Warnings = append(d.Warnings, fmt.Sprintf(format, args...))
}

// Stack collapses the dataset into a single array with a leading
// "variable" dimension, in the order given. All named variables must
// share dims and shape; if any is complex, the result is complex.
func (d *Dataset) Stack(names []string) (*Array, error) {
	if len(names) == 0 {
		for name := range d.Vars {
			names = append(names, name)
		}
	}

	var first *Array
	anyComplex := false
	for _, name := range names {
		v, ok := d.Vars[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", optics.ErrMissingVariable, name)
		}
		if first == nil {
			first = v
		} else if !sameShape(first.Shape, v.Shape) {
			return nil, fmt.Errorf("format: cannot stack %q, shape %v differs from %v", name, v.Shape, first.Shape)
		}
		anyComplex = anyComplex || v.IsComplex()
	}
	if first == nil {
		return nil, fmt.Errorf("format: nothing to stack")
	}

	out := &Array{
		Dims:  append([]string{"variable"}, first.Dims...),
		Shape: append([]int{len(names)}, first.Shape...),
	}
	n := first.Size()
	if anyComplex {
		out.Complex = make([]complex128, 0, len(names)*n)
		for _, name := range names {
			v := d.Vars[name]
			if v.IsComplex() {
				out.Complex = append(out.Complex, v.Complex...)
				continue
			}
			for _, r := range v.Real {
				out.Complex = append(out.Complex, complex(r, 0))
			}
		}
		return out, nil
	}
	out.Real = make([]float64, 0, len(names)*n)
	for _, name := range names {
		out.Real = append(out.Real, d.Vars[name].Real...)
	}
	return out, nil
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
