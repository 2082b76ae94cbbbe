package material

import (
	"github.com/arvi-k/optisim/internal/optics"
)

// Constant is a material with a frequency-independent complex refractive
// index. Mutating N is visible through every layer that references the
// material.
type Constant struct {
	N    complex128
	name string
}

// NewConstant returns a constant-index material. NewConstant(1) is vacuum.
func NewConstant(n complex128) *Constant {
	return &Constant{N: n, name: "constant"}
}

// NewNamedConstant returns a constant-index material with a caller-chosen
// name.
func NewNamedConstant(n complex128, name string) *Constant {
	return &Constant{N: n, name: name}
}

func (c *Constant) Name() string { return c.name }

func (c *Constant) Index(freqs []float64, _ optics.Component) ([]complex128, error) {
	out := make([]complex128, len(freqs))
	for i := range out {
		out[i] = c.N
	}
	return out, nil
}

// Clone returns an independent copy.
func (c *Constant) Clone() optics.Material {
	cp := *c
	return &cp
}
