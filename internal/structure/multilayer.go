package structure

import (
	"github.com/arvi-k/optisim/internal/optics"
)

// Multilayer is an ordered sequence of layers. It owns its layer list
// (reorder/insert/delete), but the individual *Layer objects may be
// shared with other structures when built with aliasing semantics.
type Multilayer struct {
	layers []*Layer

	// unitCell records the literal layers last used for periodic
	// construction, kept for provenance and re-derivation. The recorded
	// pointers are the caller's originals, not copies.
	unitCell []*Layer
}

// NewMultilayer wraps an ordered layer sequence. A zero-layer stack is
// legal and produces empty index/thickness outputs.
func NewMultilayer(layers []*Layer) *Multilayer {
	return &Multilayer{layers: append([]*Layer(nil), layers...)}
}

// FromUnitCell builds [incident] + cell repeated periods times + [exit].
//
// With copyLayers, every inserted layer, boundaries included, is an
// independent deep copy: mutating any layer of the result never affects
// the arguments or any other layer of the stack. Without, the same
// *Layer pointers are referenced in every period and at the boundaries,
// so a mutation through any alias is visible everywhere the layer is
// used, including other structures built from the same objects.
//
// The returned stack records cell (the literal pointers passed in) as
// its unit cell.
func FromUnitCell(cell []*Layer, incident, exit *Layer, periods int, copyLayers bool) *Multilayer {
	layers := make([]*Layer, 0, len(cell)*periods+2)

	insert := func(l *Layer) {
		if copyLayers {
			l = l.Clone()
		}
		layers = append(layers, l)
	}

	insert(incident)
	for p := 0; p < periods; p++ {
		for _, l := range cell {
			insert(l)
		}
	}
	insert(exit)

	return &Multilayer{
		layers:   layers,
		unitCell: append([]*Layer(nil), cell...),
	}
}

// FromOwnUnitCell re-derives a periodic stack from this one with a new
// period count. The repeating unit is the recorded unit cell if present,
// else the stack layers (everything between the boundaries). The current
// first and last layers become the new boundaries; a stack with no
// layers at all yields an empty stack (or vacuum boundaries around a
// recorded cell).
func (m *Multilayer) FromOwnUnitCell(periods int, copyLayers bool) *Multilayer {
	cell := m.unitCell
	if len(cell) == 0 {
		cell = m.StackLayers()
	}
	if len(m.layers) == 0 {
		if len(cell) == 0 {
			return NewMultilayer(nil)
		}
		return FromUnitCell(cell, Vacuum(), Vacuum(), periods, copyLayers)
	}
	return FromUnitCell(cell, m.layers[0], m.layers[len(m.layers)-1], periods, copyLayers)
}

// Layers returns the layer sequence. The slice is the multilayer's own
// list; callers should mutate it through the Multilayer methods.
func (m *Multilayer) Layers() []*Layer { return m.layers }

// StackLayers returns every layer except the first and last, which
// conventionally are the incident and exit media. Nil for stacks with
// fewer than two layers.
func (m *Multilayer) StackLayers() []*Layer {
	if len(m.layers) < 2 {
		return nil
	}
	return m.layers[1 : len(m.layers)-1]
}

// UnitCell returns the recorded repeating unit, nil when the stack was
// not built periodically.
func (m *Multilayer) UnitCell() []*Layer { return m.unitCell }

// Len returns the number of layers.
func (m *Multilayer) Len() int { return len(m.layers) }

// Insert places l at position i.
func (m *Multilayer) Insert(i int, l *Layer) {
	m.layers = append(m.layers, nil)
	copy(m.layers[i+1:], m.layers[i:])
	m.layers[i] = l
}

// Remove deletes the layer at position i.
func (m *Multilayer) Remove(i int) {
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
}

// Index returns the stack's refractive index matrix: one row per layer,
// one value per frequency.
func (m *Multilayer) Index(freqs []float64, component optics.Component) ([][]complex128, error) {
	out := make([][]complex128, 0, len(m.layers))
	for _, l := range m.layers {
		rows, err := l.Index(freqs, component)
		if err != nil {
			return nil, err
		}
		out = append(out, rows[0])
	}
	return out, nil
}

// Thickness returns the per-layer thickness vector.
func (m *Multilayer) Thickness() []float64 {
	out := make([]float64, len(m.layers))
	for i, l := range m.layers {
		out[i] = l.D()
	}
	return out
}
