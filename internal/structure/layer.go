package structure

import (
	"fmt"

	"github.com/arvi-k/optisim/internal/optics"
)

// Layer is one optically distinct slab: an index-providing capability
// plus a non-negative thickness. A layer optionally keeps a
// back-reference to the material that produced its index function; the
// reference is never owned exclusively and exists for introspection and
// live re-querying only.
type Layer struct {
	indexFn   optics.IndexFunc
	thickness float64
	material  optics.Material
	name      string
}

// NewLayer builds a layer from an index function and a thickness.
// A nil fn means vacuum (constant index 1). Thickness < 0 is rejected.
func NewLayer(fn optics.IndexFunc, thickness float64) (*Layer, error) {
	if thickness < 0 {
		return nil, fmt.Errorf("%w: %v", optics.ErrNegativeThickness, thickness)
	}
	if fn == nil {
		fn = vacuumIndex
	}
	return &Layer{indexFn: fn, thickness: thickness}, nil
}

// Vacuum returns the default layer: constant index 1, thickness 0.
func Vacuum() *Layer {
	l, _ := NewLayer(nil, 0)
	return l
}

// FromMaterial builds a layer delegating its index to m, keeping a
// back-reference to m and defaulting the layer name from the material
// name. A nil material yields the vacuum default, matching NewLayer.
func FromMaterial(m optics.Material, thickness float64) (*Layer, error) {
	if m == nil {
		return NewLayer(nil, thickness)
	}
	l, err := NewLayer(m.Index, thickness)
	if err != nil {
		return nil, err
	}
	l.material = m
	l.name = m.Name()
	return l, nil
}

// FromMaterialNamed is FromMaterial with an explicit layer name.
func FromMaterialNamed(m optics.Material, thickness float64, name string) (*Layer, error) {
	l, err := FromMaterial(m, thickness)
	if err != nil {
		return nil, err
	}
	l.name = name
	return l, nil
}

func vacuumIndex(freqs []float64, _ optics.Component) ([]complex128, error) {
	out := make([]complex128, len(freqs))
	for i := range out {
		out[i] = 1
	}
	return out, nil
}

// Index returns the layer's refractive index as a single-row matrix,
// one value per frequency, delegating to the bound index function.
func (l *Layer) Index(freqs []float64, component optics.Component) ([][]complex128, error) {
	row, err := l.indexFn(freqs, component)
	if err != nil {
		return nil, err
	}
	return [][]complex128{row}, nil
}

// Thickness returns the stored scalar as a length-1 slice for uniform
// downstream array handling.
func (l *Layer) Thickness() []float64 {
	return []float64{l.thickness}
}

// D returns the scalar thickness.
func (l *Layer) D() float64 { return l.thickness }

// SetThickness replaces the thickness. Negative values are rejected.
func (l *Layer) SetThickness(d float64) error {
	if d < 0 {
		return fmt.Errorf("%w: %v", optics.ErrNegativeThickness, d)
	}
	l.thickness = d
	return nil
}

// SetIndexFunc rebinds the index capability. The material back-reference
// is cleared since it no longer describes the index source.
func (l *Layer) SetIndexFunc(fn optics.IndexFunc) error {
	if fn == nil {
		return optics.ErrNilIndexFunc
	}
	l.indexFn = fn
	l.material = nil
	return nil
}

// Material returns the originating material, or nil when the layer was
// built from a bare index function.
func (l *Layer) Material() optics.Material { return l.material }

// Name returns the layer name ("" when unnamed).
func (l *Layer) Name() string { return l.name }

// SetName renames the layer.
func (l *Layer) SetName(name string) { l.name = name }

// Clone returns an independent deep copy. When the material implements
// the optional [optics.Cloner] capability it is cloned too and the copy
// delegates to the cloned material; otherwise the material reference is
// shared and only thickness and name are independent.
func (l *Layer) Clone() *Layer {
	cp := &Layer{
		indexFn:   l.indexFn,
		thickness: l.thickness,
		material:  l.material,
		name:      l.name,
	}
	if c, ok := l.material.(optics.Cloner); ok {
		m := c.Clone()
		cp.material = m
		cp.indexFn = m.Index
	}
	return cp
}

// Equal reports value equality: same thickness, same name, and the same
// index at a probe frequency. It deliberately ignores identity so that
// independent copies compare equal.
func (l *Layer) Equal(o *Layer) bool {
	if o == nil {
		return false
	}
	if l.thickness != o.thickness || l.name != o.name {
		return false
	}
	probe := []float64{1}
	a, errA := l.indexFn(probe, optics.ComponentX)
	b, errB := o.indexFn(probe, optics.ComponentX)
	if errA != nil || errB != nil {
		return false
	}
	return a[0] == b[0]
}
