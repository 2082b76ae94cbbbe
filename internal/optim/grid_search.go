// Package optim searches stack geometry for designs minimizing an
// objective computed from simulation output.
package optim

import (
	"math"

	"github.com/arvi-k/optisim/internal/sim"
	"github.com/arvi-k/optisim/internal/structure"
)

// Objective scores one simulation result; lower is better.
type Objective func(result any) float64

// GridSearch exhaustively scans thickness combinations for a set of
// layers. Layers are addressed by position in the stack and mutated in
// place during the scan, then restored.
type GridSearch struct {
	layers []int
	ranges [][]float64
}

// NewGridSearch pairs each layer position with its candidate thickness
// values.
func NewGridSearch(layers []int, ranges [][]float64) *GridSearch {
	return &GridSearch{layers: layers, ranges: ranges}
}

// Search runs the base simulation once per combination and returns the
// best thickness per layer position together with its score. Runs use
// Discard, so the simulation's cached data survives the scan untouched.
func (g *GridSearch) Search(s *sim.Simulation, m *structure.Multilayer, objective Objective) (map[int]float64, float64, error) {
	original := make([]float64, len(g.layers))
	for i, pos := range g.layers {
		original[i] = m.Layers()[pos].D()
	}
	defer func() {
		for i, pos := range g.layers {
			m.Layers()[pos].SetThickness(original[i])
		}
	}()

	best := math.Inf(1)
	var bestParams map[int]float64

	err := g.searchRecursive(s, m, objective, 0, make(map[int]float64), &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	s *sim.Simulation,
	m *structure.Multilayer,
	objective Objective,
	depth int,
	current map[int]float64,
	best *float64,
	bestParams *map[int]float64,
) error {
	if depth == len(g.layers) {
		result, err := s.Simulate(sim.RunParams{Structure: m, Discard: true})
		if err != nil {
			return err
		}

		val := objective(result)
		if val < *best {
			*best = val
			*bestParams = make(map[int]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	pos := g.layers[depth]
	for _, d := range g.ranges[depth] {
		if err := m.Layers()[pos].SetThickness(d); err != nil {
			return err
		}
		current[pos] = d
		if err := g.searchRecursive(s, m, objective, depth+1, current, best, bestParams); err != nil {
			return err
		}
	}
	return nil
}
