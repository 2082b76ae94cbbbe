package sim

import (
	"sync"
)

// Sweep fans one base simulation out over many per-call parameter sets,
// one goroutine per point. Every point runs with Discard forced on, so
// the base simulation's cached data is never touched and the runs are
// safe to execute concurrently as long as the engine is.
type Sweep struct {
	Base *Simulation
}

func NewSweep(base *Simulation) *Sweep {
	return &Sweep{Base: base}
}

// Run executes every parameter point and returns the results in point
// order. The first error wins; partial results are dropped.
func (e *Sweep) Run(points []RunParams) ([]any, error) {
	results := make([]any, len(points))
	errs := make([]error, len(points))

	var wg sync.WaitGroup
	for i := range points {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			p := points[idx]
			p.Discard = true
			results[idx], errs[idx] = e.Base.Simulate(p)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// AngleSweep builds one parameter point per incidence angle, so each
// angle's spectrum comes back as its own result.
func AngleSweep(angles []float64) []RunParams {
	points := make([]RunParams, len(angles))
	for i, a := range angles {
		points[i] = RunParams{Angles: []float64{a}}
	}
	return points
}
