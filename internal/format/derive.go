package format

import (
	"fmt"
	"math/cmplx"
)

// AddAbsorptance derives As and Ap as 1 - R - T per polarization from
// the power coefficients already in the dataset. A polarization whose
// inputs are missing is skipped with a warning rather than an error, so
// partial engine output still formats.
func AddAbsorptance(d *Dataset) {
	for _, pol := range []string{"s", "p"} {
		r, rok := d.Vars["R"+pol]
		t, tok := d.Vars["T"+pol]
		if !rok || !tok {
			d.Warn("absorptance A%s skipped: R%s and T%s both required", pol, pol, pol)
			continue
		}
		if r.IsComplex() || t.IsComplex() {
			d.Warn("absorptance A%s skipped: power coefficients must be real", pol)
			continue
		}
		if !sameShape(r.Shape, t.Shape) {
			d.Warn("absorptance A%s skipped: R%s shape %v differs from T%s shape %v", pol, pol, r.Shape, pol, t.Shape)
			continue
		}
		abs := make([]float64, len(r.Real))
		for i := range abs {
			abs[i] = 1 - r.Real[i] - t.Real[i]
		}
		d.Vars["A"+pol] = &Array{
			Dims:  append([]string(nil), r.Dims...),
			Shape: append([]int(nil), r.Shape...),
			Real:  abs,
		}
	}
}

// AddVectorNorms derives the squared field magnitude for each named
// variable, summing |component|^2 over the trailing vector dimension.
// The derived variable is named "|<name>|^2" and drops the vector dim.
// Named variables absent from the dataset are skipped with a warning.
func AddVectorNorms(d *Dataset, names []string) error {
	for _, name := range names {
		v, ok := d.Vars[name]
		if !ok {
			d.Warn("norm of %q skipped: variable absent", name)
			continue
		}
		if len(v.Dims) == 0 || v.Dims[len(v.Dims)-1] != "vector" {
			return fmt.Errorf("format: %q has no trailing vector dimension", name)
		}

		width := v.Shape[len(v.Shape)-1]
		n := v.Size() / width
		norm := make([]float64, n)
		for i := 0; i < n; i++ {
			var sum float64
			for j := 0; j < width; j++ {
				if v.IsComplex() {
					m := cmplx.Abs(v.Complex[i*width+j])
					sum += m * m
				} else {
					m := v.Real[i*width+j]
					sum += m * m
				}
			}
			norm[i] = sum
		}
		d.Vars[fmt.Sprintf("|%s|^2", name)] = &Array{
			Dims:  append([]string(nil), v.Dims[:len(v.Dims)-1]...),
			Shape: append([]int(nil), v.Shape[:len(v.Shape)-1]...),
			Real:  norm,
		}
	}
	return nil
}
