package format

import (
	"fmt"

	"github.com/arvi-k/optisim/internal/optics"
)

// Output selects the shape a formatter returns.
type Output string

const (
	// OutputRaw passes the engine result through untouched.
	OutputRaw Output = ""
	// OutputDataset returns a *Dataset.
	OutputDataset Output = "dataset"
	// OutputArray returns a single *Array with a leading "variable" dim.
	OutputArray Output = "array"
)

// RTVars is the canonical order of reflection/transmission variables:
// complex amplitude coefficients first, then power coefficients.
var RTVars = []string{"rs", "rp", "ts", "tp", "Rs", "Rp", "Ts", "Tp"}

// FieldVars is the canonical order of field variables.
var FieldVars = []string{"Es", "Hs", "Ep", "Hp"}

// RTFormatter shapes raw reflection/transmission output into a dataset
// over frequency and incidence angle.
type RTFormatter struct {
	Output Output
	// Absorptance adds As and Ap (1 - R - T per polarization) when the
	// power coefficients are present.
	Absorptance bool
}

func (f *RTFormatter) Format(raw optics.RawResult) (any, error) {
	if f.Output == OutputRaw {
		return raw, nil
	}
	if f.Output != OutputDataset && f.Output != OutputArray {
		return nil, fmt.Errorf("%w: %q", optics.ErrUnknownOutput, f.Output)
	}

	d := NewDataset()
	freqs, err := coordOf(raw, "frequency")
	if err != nil {
		return nil, err
	}
	thetas, err := coordOf(raw, "theta")
	if err != nil {
		return nil, err
	}
	d.SetCoord("frequency", freqs)
	d.SetCoord("theta", thetas)
	setWavelength(d, raw)

	dims := []string{"frequency", "theta"}
	shape := []int{len(freqs), len(thetas)}
	for _, name := range RTVars {
		a, ok, err := varOf(raw, name, dims, shape)
		if err != nil {
			return nil, err
		}
		if !ok {
			d.Warn("variable %q absent from engine output", name)
			continue
		}
		if err := d.AddVar(name, a); err != nil {
			return nil, err
		}
	}

	if f.Absorptance {
		AddAbsorptance(d)
	}
	return f.finish(d, RTVars)
}

func (f *RTFormatter) finish(d *Dataset, order []string) (any, error) {
	if f.Output == OutputDataset {
		return d, nil
	}
	names := make([]string, 0, len(d.Vars))
	for _, name := range order {
		if _, ok := d.Vars[name]; ok {
			names = append(names, name)
		}
	}
	for name := range d.Vars {
		if !contains(order, name) {
			names = append(names, name)
		}
	}
	return d.Stack(names)
}

// FieldFormatter shapes raw field-profile output into a dataset over
// position, frequency, incidence angle, and a trailing vector dimension
// of size three.
type FieldFormatter struct {
	Output Output
	// Norms adds |v|^2, the squared field magnitude summed over the
	// vector dimension, for every field variable present.
	Norms bool
}

func (f *FieldFormatter) Format(raw optics.RawResult) (any, error) {
	if f.Output == OutputRaw {
		return raw, nil
	}
	if f.Output != OutputDataset && f.Output != OutputArray {
		return nil, fmt.Errorf("%w: %q", optics.ErrUnknownOutput, f.Output)
	}

	d := NewDataset()
	dims := []string{"x", "y", "z", "frequency", "theta"}
	shape := make([]int, 0, len(dims)+1)
	for _, dim := range dims {
		coord, err := coordOf(raw, dim)
		if err != nil {
			return nil, err
		}
		d.SetCoord(dim, coord)
		shape = append(shape, len(coord))
	}
	setWavelength(d, raw)
	dims = append(dims, "vector")
	shape = append(shape, 3)

	for _, name := range FieldVars {
		a, ok, err := varOf(raw, name, dims, shape)
		if err != nil {
			return nil, err
		}
		if !ok {
			d.Warn("variable %q absent from engine output", name)
			continue
		}
		if err := d.AddVar(name, a); err != nil {
			return nil, err
		}
	}

	if f.Norms {
		if err := AddVectorNorms(d, FieldVars); err != nil {
			return nil, err
		}
	}

	if f.Output == OutputDataset {
		return d, nil
	}
	names := make([]string, 0, len(FieldVars))
	for _, name := range FieldVars {
		if _, ok := d.Vars[name]; ok {
			names = append(names, name)
		}
	}
	return d.Stack(names)
}

// CombinedFormatter shapes a combined engine's output: the rt
// sub-result through an RT formatter and the field sub-result through a
// field formatter, returned under the same keys.
type CombinedFormatter struct {
	RT    RTFormatter
	Field FieldFormatter
}

func (f *CombinedFormatter) Format(raw optics.RawResult) (any, error) {
	if f.RT.Output == OutputRaw && f.Field.Output == OutputRaw {
		return raw, nil
	}

	rt, ok := raw["rt"].(optics.RawResult)
	if !ok {
		return nil, fmt.Errorf("%w: sub-result %q", optics.ErrMissingVariable, "rt")
	}
	field, ok := raw["field"].(optics.RawResult)
	if !ok {
		return nil, fmt.Errorf("%w: sub-result %q", optics.ErrMissingVariable, "field")
	}

	rtOut, err := f.RT.Format(rt)
	if err != nil {
		return nil, err
	}
	fieldOut, err := f.Field.Format(field)
	if err != nil {
		return nil, err
	}
	return map[string]any{"rt": rtOut, "field": fieldOut}, nil
}

// setWavelength carries the solver's lambda vector over as a wavelength
// coordinate. Solvers emit it alongside frequency; its absence is worth
// a warning but not an error.
func setWavelength(d *Dataset, raw optics.RawResult) {
	if _, ok := raw["lambda"]; !ok {
		d.Warn("coordinate %q absent from engine output", "lambda")
		return
	}
	wl, err := coordOf(raw, "lambda")
	if err != nil {
		d.Warn("coordinate lambda unusable: %v", err)
		return
	}
	d.SetCoord("wavelength", wl)
}

func coordOf(raw optics.RawResult, name string) ([]float64, error) {
	v, ok := raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: coordinate %q", optics.ErrMissingVariable, name)
	}
	coord, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("format: coordinate %q is %T, want []float64", name, v)
	}
	return coord, nil
}

// varOf extracts a variable, accepting real or complex payloads. The
// second return is false when the key is absent.
func varOf(raw optics.RawResult, name string, dims []string, shape []int) (*Array, bool, error) {
	v, ok := raw[name]
	if !ok {
		return nil, false, nil
	}
	a := &Array{Dims: append([]string(nil), dims...), Shape: append([]int(nil), shape...)}
	switch data := v.(type) {
	case []float64:
		a.Real = data
	case []complex128:
		a.Complex = data
	default:
		return nil, false, fmt.Errorf("format: variable %q is %T, want []float64 or []complex128", name, v)
	}
	return a, true, nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
