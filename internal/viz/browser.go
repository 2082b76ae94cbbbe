// Package viz renders spectra in the terminal: a static asciigraph plot
// for one-shot output and an interactive bubbletea browser for stepping
// through variables and incidence angles.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/optics"
)

// Browser is an interactive viewer over a formatted dataset. It shows
// one real frequency x theta variable at a time, plotted against
// wavelength or frequency.
type Browser struct {
	title      string
	ds         *format.Dataset
	vars       []string
	varCursor  int
	thetaIdx   int
	wavelength bool
	width      int
	height     int
}

// NewBrowser builds a browser over the dataset's plottable variables:
// real-valued ones on the frequency x theta grid.
func NewBrowser(title string, ds *format.Dataset) *Browser {
	vars := make([]string, 0, len(ds.Vars))
	for name, v := range ds.Vars {
		if v.IsComplex() || len(v.Dims) != 2 {
			continue
		}
		vars = append(vars, name)
	}
	sort.Strings(vars)

	return &Browser{
		title:      title,
		ds:         ds,
		vars:       vars,
		wavelength: true,
		width:      80,
		height:     24,
	}
}

func (b *Browser) Init() tea.Cmd { return nil }

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "left", "h":
			if b.varCursor > 0 {
				b.varCursor--
			}
		case "right", "l":
			if b.varCursor < len(b.vars)-1 {
				b.varCursor++
			}
		case "up", "k":
			if b.thetaIdx < len(b.thetas())-1 {
				b.thetaIdx++
			}
		case "down", "j":
			if b.thetaIdx > 0 {
				b.thetaIdx--
			}
		case "w":
			b.wavelength = !b.wavelength
		}
	}
	return b, nil
}

func (b *Browser) thetas() []float64 { return b.ds.Coords["theta"] }

// slice extracts the selected variable at the selected angle, one value
// per frequency.
func (b *Browser) slice() []float64 {
	v := b.ds.Vars[b.vars[b.varCursor]]
	nTheta := len(b.thetas())
	if nTheta == 0 {
		return nil
	}
	out := make([]float64, 0, len(v.Real)/nTheta)
	for i := b.thetaIdx; i < len(v.Real); i += nTheta {
		out = append(out, v.Real[i])
	}
	return out
}

func (b *Browser) View() string {
	var s strings.Builder
	s.WriteString("\n  " + Title.Render(b.title) + "\n")
	s.WriteString("  " + Separator(b.width-4) + "\n\n")

	if len(b.vars) == 0 {
		s.WriteString("  " + Subtle.Render("nothing plottable in this dataset") + "\n")
		s.WriteString("\n  " + KeyHint.Render("q quit") + "\n")
		return s.String()
	}

	var tabs []string
	for i, name := range b.vars {
		if i == b.varCursor {
			tabs = append(tabs, Selected.Render(name))
		} else {
			tabs = append(tabs, Subtle.Render(name))
		}
	}
	s.WriteString("  " + strings.Join(tabs, "  ") + "\n")

	thetas := b.thetas()
	if len(thetas) > 0 {
		s.WriteString("  " + Label.Render("theta ") + Value.Render(fmt.Sprintf("%.1f°", thetas[b.thetaIdx])) +
			Subtle.Render(fmt.Sprintf("  (%d/%d)", b.thetaIdx+1, len(thetas))) + "\n\n")
	}

	values := b.slice()
	if len(values) > 1 {
		graph := asciigraph.Plot(values,
			asciigraph.Height(b.height-12),
			asciigraph.Width(b.width-12),
			asciigraph.Caption(b.axisCaption()),
		)
		s.WriteString(graph + "\n")
	} else {
		s.WriteString("  " + Subtle.Render("not enough points to plot") + "\n")
	}

	for _, w := range b.ds.Warnings {
		s.WriteString("  " + Warning.Render("! "+w) + "\n")
	}

	s.WriteString("\n  " + KeyHint.Render("h/l variable  j/k angle  w axis  q quit") + "\n")
	return s.String()
}

func (b *Browser) axisCaption() string {
	freqs := b.ds.Coords["frequency"]
	if len(freqs) == 0 {
		return ""
	}
	lo, hi := freqs[0], freqs[len(freqs)-1]
	if b.wavelength {
		return fmt.Sprintf("%s: %.0f nm .. %.0f nm", b.vars[b.varCursor],
			optics.SpeedOfLight/lo*1e9, optics.SpeedOfLight/hi*1e9)
	}
	return fmt.Sprintf("%s: %.3g Hz .. %.3g Hz", b.vars[b.varCursor], lo, hi)
}

// RunBrowser starts the interactive viewer.
func RunBrowser(title string, ds *format.Dataset) error {
	_, err := tea.NewProgram(NewBrowser(title, ds), tea.WithAltScreen()).Run()
	return err
}
