package material

import (
	"testing"

	"github.com/arvi-k/optisim/internal/optics"
)

func TestConstantIndex(t *testing.T) {
	m := NewConstant(2.4)

	idx, err := m.Index([]float64{1e14, 2e14, 3e14}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if len(idx) != 3 {
		t.Fatalf("expected 3 values, got %d", len(idx))
	}
	for i, v := range idx {
		if v != 2.4 {
			t.Errorf("index[%d] = %v, want 2.4", i, v)
		}
	}
}

func TestConstantLossy(t *testing.T) {
	m := NewConstant(complex(1.5, 0.2))

	idx, err := m.Index([]float64{1e14}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if imag(idx[0]) != 0.2 {
		t.Errorf("expected positive imaginary part 0.2, got %v", imag(idx[0]))
	}
}

func TestConstantCloneIndependent(t *testing.T) {
	m := NewConstant(1)
	c := m.Clone().(*Constant)

	m.N = 3
	idx, _ := c.Index([]float64{1}, optics.ComponentX)
	if idx[0] != 1 {
		t.Errorf("clone should be unaffected by mutation, got %v", idx[0])
	}
}
