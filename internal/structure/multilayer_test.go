package structure

import (
	"testing"

	"github.com/arvi-k/optisim/internal/material"
	"github.com/arvi-k/optisim/internal/optics"
)

func twoLayerStack(t *testing.T) (*Multilayer, *material.Constant, *material.Constant) {
	t.Helper()
	m1 := material.NewConstant(1)
	m2 := material.NewConstant(2)
	l1, err := FromMaterial(m1, 1)
	if err != nil {
		t.Fatalf("layer 1: %v", err)
	}
	l2, err := FromMaterial(m2, 2)
	if err != nil {
		t.Fatalf("layer 2: %v", err)
	}
	return NewMultilayer([]*Layer{l1, l2}), m1, m2
}

func TestMultilayerIndexAndThickness(t *testing.T) {
	m, _, _ := twoLayerStack(t)

	idx, err := m.Index([]float64{100}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if len(idx) != 2 || len(idx[0]) != 1 {
		t.Fatalf("expected 2x1 matrix, got %dx%d", len(idx), len(idx[0]))
	}
	if idx[0][0] != 1 || idx[1][0] != 2 {
		t.Errorf("index = [[%v],[%v]], want [[1],[2]]", idx[0][0], idx[1][0])
	}

	d := m.Thickness()
	if len(d) != 2 || d[0] != 1 || d[1] != 2 {
		t.Errorf("thickness = %v, want [1 2]", d)
	}
}

func TestMultilayerIndexShape(t *testing.T) {
	m, _, _ := twoLayerStack(t)

	idx, err := m.Index([]float64{1e14, 2e14, 3e14}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if len(idx) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(idx))
	}
	for i, row := range idx {
		if len(row) != 3 {
			t.Errorf("row %d has %d values, want 3", i, len(row))
		}
	}
}

func TestMultilayerEmpty(t *testing.T) {
	m := NewMultilayer(nil)

	idx, err := m.Index([]float64{1}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if len(idx) != 0 {
		t.Errorf("expected empty index matrix, got %d rows", len(idx))
	}
	if len(m.Thickness()) != 0 {
		t.Error("expected empty thickness vector")
	}
	if m.StackLayers() != nil {
		t.Error("expected nil stack layers for degenerate stack")
	}
}

func TestStackLayers(t *testing.T) {
	layers := make([]*Layer, 4)
	for i := range layers {
		l, _ := NewLayer(nil, float64(i))
		layers[i] = l
	}
	m := NewMultilayer(layers)

	stack := m.StackLayers()
	if len(stack) != 2 {
		t.Fatalf("expected 2 stack layers, got %d", len(stack))
	}
	if stack[0] != layers[1] || stack[1] != layers[2] {
		t.Error("stack layers should be layers[1:len-1]")
	}
}

func TestFromUnitCellLayout(t *testing.T) {
	cellA, _ := FromMaterial(material.NewNamedConstant(2.4, "high"), 1e-7)
	cellB, _ := FromMaterial(material.NewNamedConstant(1.5, "low"), 2e-7)
	incident := Vacuum()
	exit, _ := FromMaterial(material.NewNamedConstant(1.5, "substrate"), 0)

	const periods = 5
	m := FromUnitCell([]*Layer{cellA, cellB}, incident, exit, periods, true)

	if m.Len() != periods*2+2 {
		t.Fatalf("expected %d layers, got %d", periods*2+2, m.Len())
	}

	// Boundaries equal the arguments by value but are not the same objects.
	if !m.Layers()[0].Equal(incident) || !m.Layers()[m.Len()-1].Equal(exit) {
		t.Error("boundary layers should equal the incident/exit arguments")
	}
	if m.Layers()[0] == incident || m.Layers()[m.Len()-1] == exit {
		t.Error("copied boundaries must not be the argument objects")
	}

	// The recorded unit cell is the literal argument sequence.
	cell := m.UnitCell()
	if len(cell) != 2 || cell[0] != cellA || cell[1] != cellB {
		t.Error("unit cell should record the literal layers passed in")
	}
}

func TestFromUnitCellCopySemantics(t *testing.T) {
	cellA, _ := FromMaterial(material.NewConstant(2.4), 1e-7)
	cellB, _ := FromMaterial(material.NewConstant(1.5), 2e-7)
	cell := []*Layer{cellA, cellB}

	m := FromUnitCell(cell, Vacuum(), Vacuum(), 3, true)

	// k = 2: layers[1] and layers[1+k] are copies of the same cell layer.
	if err := m.Layers()[1].SetThickness(9e-7); err != nil {
		t.Fatalf("set thickness: %v", err)
	}
	if got := m.Layers()[3].D(); got != 1e-7 {
		t.Errorf("copied periods must be independent, layers[3].D() = %v", got)
	}
	if cellA.D() != 1e-7 {
		t.Errorf("argument layer must be unaffected, got %v", cellA.D())
	}
}

func TestFromUnitCellAliasSemantics(t *testing.T) {
	cellA, _ := FromMaterial(material.NewConstant(2.4), 1e-7)
	cellB, _ := FromMaterial(material.NewConstant(1.5), 2e-7)
	cell := []*Layer{cellA, cellB}

	m := FromUnitCell(cell, Vacuum(), Vacuum(), 3, false)

	if err := m.Layers()[1].SetThickness(9e-7); err != nil {
		t.Fatalf("set thickness: %v", err)
	}
	// Every period references the same object, as does the argument.
	if got := m.Layers()[3].D(); got != 9e-7 {
		t.Errorf("aliased periods must share mutations, layers[3].D() = %v", got)
	}
	if cellA.D() != 9e-7 {
		t.Errorf("aliased argument layer must share mutations, got %v", cellA.D())
	}
}

func TestAliasedMaterialMutationVisibleEverywhere(t *testing.T) {
	shared := material.NewConstant(2.0)
	la, _ := FromMaterial(shared, 1e-7)
	lb, _ := FromMaterial(shared, 2e-7)

	first := FromUnitCell([]*Layer{la, lb}, Vacuum(), Vacuum(), 2, false)
	second := FromUnitCell([]*Layer{la}, Vacuum(), Vacuum(), 4, false)

	shared.N = 3.5

	for _, m := range []*Multilayer{first, second} {
		idx, err := m.Index([]float64{1e14}, optics.ComponentX)
		if err != nil {
			t.Fatalf("index failed: %v", err)
		}
		for i := 1; i < len(idx)-1; i++ {
			if idx[i][0] != 3.5 {
				t.Fatalf("layer %d index = %v, want 3.5 via shared material", i, idx[i][0])
			}
		}
	}
}

func TestFromOwnUnitCellRecorded(t *testing.T) {
	cellA, _ := FromMaterial(material.NewConstant(2.4), 1e-7)
	cell := []*Layer{cellA}
	m := FromUnitCell(cell, Vacuum(), Vacuum(), 2, true)

	rebuilt := m.FromOwnUnitCell(7, true)
	if rebuilt.Len() != 7+2 {
		t.Fatalf("expected 9 layers, got %d", rebuilt.Len())
	}
	if got := rebuilt.UnitCell(); len(got) != 1 || got[0] != cellA {
		t.Error("re-derivation should reuse the recorded unit cell")
	}
}

func TestFromOwnUnitCellDegenerate(t *testing.T) {
	// A zero-layer stack is legal and must re-derive to an empty stack
	// rather than panic.
	rebuilt := NewMultilayer(nil).FromOwnUnitCell(2, true)
	if rebuilt.Len() != 0 {
		t.Errorf("expected empty stack, got %d layers", rebuilt.Len())
	}

	// Single-layer stack: no stack layers, the lone layer bounds an
	// empty cell on both sides.
	single, _ := NewLayer(nil, 1e-7)
	rebuilt = NewMultilayer([]*Layer{single}).FromOwnUnitCell(3, false)
	if rebuilt.Len() != 2 {
		t.Errorf("expected 2 boundary layers, got %d", rebuilt.Len())
	}
}

func TestFromOwnUnitCellFallsBackToStackLayers(t *testing.T) {
	layers := make([]*Layer, 4)
	for i := range layers {
		layers[i], _ = NewLayer(nil, float64(i))
	}
	m := NewMultilayer(layers)

	rebuilt := m.FromOwnUnitCell(3, false)
	if rebuilt.Len() != 3*2+2 {
		t.Fatalf("expected 8 layers, got %d", rebuilt.Len())
	}

	cell := rebuilt.UnitCell()
	stack := m.StackLayers()
	if len(cell) != len(stack) {
		t.Fatalf("unit cell length %d, want %d", len(cell), len(stack))
	}
	for i := range cell {
		if cell[i] != stack[i] {
			t.Errorf("unit cell[%d] should be the original stack layer", i)
		}
	}
}

func TestInsertRemove(t *testing.T) {
	m, _, _ := twoLayerStack(t)
	mid, _ := NewLayer(nil, 5)

	m.Insert(1, mid)
	if m.Len() != 3 || m.Layers()[1] != mid {
		t.Fatal("insert misplaced the layer")
	}

	m.Remove(1)
	if m.Len() != 2 {
		t.Fatalf("expected 2 layers after remove, got %d", m.Len())
	}
	d := m.Thickness()
	if d[0] != 1 || d[1] != 2 {
		t.Errorf("thickness after remove = %v, want [1 2]", d)
	}
}
