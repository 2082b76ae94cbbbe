package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/arvi-k/optisim/internal/format"
)

// Plot renders one variable of a dataset at one incidence angle as a
// static terminal graph.
func Plot(ds *format.Dataset, variable string, thetaIdx, width, height int) (string, error) {
	v, ok := ds.Vars[variable]
	if !ok {
		return "", fmt.Errorf("viz: no variable %q in dataset", variable)
	}
	if v.IsComplex() {
		return "", fmt.Errorf("viz: %q is complex, plot a power coefficient or a norm", variable)
	}
	thetas := ds.Coords["theta"]
	if thetaIdx < 0 || thetaIdx >= len(thetas) {
		return "", fmt.Errorf("viz: angle index %d out of range (%d angles)", thetaIdx, len(thetas))
	}

	values := make([]float64, 0, len(v.Real)/len(thetas))
	for i := thetaIdx; i < len(v.Real); i += len(thetas) {
		values = append(values, v.Real[i])
	}
	if len(values) < 2 {
		return "", fmt.Errorf("viz: %q has %d points at this angle, need at least 2", variable, len(values))
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s at %.1f°", variable, thetas[thetaIdx])),
	)

	var s strings.Builder
	s.WriteString(graph + "\n")
	for _, w := range ds.Warnings {
		s.WriteString(Warning.Render("! "+w) + "\n")
	}
	return s.String(), nil
}
