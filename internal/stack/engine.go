package stack

import (
	"fmt"

	"github.com/arvi-k/optisim/internal/optics"
)

// Engine option keys understood by the solver adapters.
const (
	// OptComponent selects which index component to query from the
	// structure (an optics.Component). Defaults to X.
	OptComponent = "component"
	// OptResolution, OptMin, OptMax form the field routine's positional
	// argument tail: min requires resolution, max requires both.
	OptResolution = "resolution"
	OptMin        = "min"
	OptMax        = "max"
)

// RTEngine computes reflection/transmission spectra through a solver
// session.
type RTEngine struct {
	Session Session
}

func (e *RTEngine) Simulate(s optics.Structure, freqs, angles []float64, opts optics.Options) (optics.RawResult, error) {
	index, thickness, err := describe(s, freqs, opts)
	if err != nil {
		return nil, err
	}
	return e.Session.StackRT(index, thickness, freqs, angles)
}

// FieldEngine computes field profiles through a solver session.
type FieldEngine struct {
	Session Session
}

func (e *FieldEngine) Simulate(s optics.Structure, freqs, angles []float64, opts optics.Options) (optics.RawResult, error) {
	index, thickness, err := describe(s, freqs, opts)
	if err != nil {
		return nil, err
	}
	args, err := fieldArgs(opts)
	if err != nil {
		return nil, err
	}
	return e.Session.StackField(index, thickness, freqs, angles, args...)
}

// CombinedEngine runs both routines against one structure description,
// returning a RawResult with "rt" and "field" sub-results.
type CombinedEngine struct {
	Session Session
}

func (e *CombinedEngine) Simulate(s optics.Structure, freqs, angles []float64, opts optics.Options) (optics.RawResult, error) {
	// Query the structure once; both routines see the same snapshot.
	index, thickness, err := describe(s, freqs, opts)
	if err != nil {
		return nil, err
	}
	rt, err := e.Session.StackRT(index, thickness, freqs, angles)
	if err != nil {
		return nil, err
	}
	args, err := fieldArgs(opts)
	if err != nil {
		return nil, err
	}
	field, err := e.Session.StackField(index, thickness, freqs, angles, args...)
	if err != nil {
		return nil, err
	}
	return optics.RawResult{"rt": rt, "field": field}, nil
}

func describe(s optics.Structure, freqs []float64, opts optics.Options) ([][]complex128, []float64, error) {
	component := optics.ComponentX
	if v, ok := opts[OptComponent]; ok {
		c, ok := v.(optics.Component)
		if !ok {
			return nil, nil, fmt.Errorf("stack: option %q is %T, want optics.Component", OptComponent, v)
		}
		component = c
	}
	index, err := s.Index(freqs, component)
	if err != nil {
		return nil, nil, err
	}
	return index, s.Thickness(), nil
}

// fieldArgs builds the positional tail for the field routine. The
// solver takes resolution, min, max in order: a later argument cannot
// be passed without the ones before it.
func fieldArgs(opts optics.Options) ([]float64, error) {
	var args []float64
	for _, key := range []string{OptResolution, OptMin, OptMax} {
		v, ok := opts[key]
		if !ok {
			break
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("stack: option %q is %T, want float64", key, v)
		}
		args = append(args, f)
	}
	for _, key := range []string{OptMin, OptMax} {
		if _, ok := opts[key]; ok && len(args) < position(key)+1 {
			return nil, fmt.Errorf("stack: option %q needs the preceding positional options set", key)
		}
	}
	return args, nil
}

func position(key string) int {
	switch key {
	case OptResolution:
		return 0
	case OptMin:
		return 1
	default:
		return 2
	}
}
