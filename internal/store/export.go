package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/optics"
)

type ComplexData struct {
	Re []float64 `json:"re"`
	Im []float64 `json:"im"`
}

type VariableData struct {
	Dims    []string     `json:"dims"`
	Shape   []int        `json:"shape"`
	Real    []float64    `json:"real,omitempty"`
	Complex *ComplexData `json:"complex,omitempty"`
}

type ExportData struct {
	Name      string                  `json:"name"`
	Engine    string                  `json:"engine"`
	Coords    map[string][]float64    `json:"coords"`
	Variables map[string]VariableData `json:"variables"`
	Warnings  []string                `json:"warnings,omitempty"`
}

func build(name, engine string, ds *format.Dataset) ExportData {
	data := ExportData{
		Name:      name,
		Engine:    engine,
		Coords:    ds.Coords,
		Variables: make(map[string]VariableData, len(ds.Vars)),
		Warnings:  ds.Warnings,
	}

	for varName, v := range ds.Vars {
		out := VariableData{Dims: v.Dims, Shape: v.Shape}
		if v.IsComplex() {
			c := ComplexData{Re: make([]float64, len(v.Complex)), Im: make([]float64, len(v.Complex))}
			for i, val := range v.Complex {
				c.Re[i] = real(val)
				c.Im[i] = imag(val)
			}
			out.Complex = &c
		} else {
			out.Real = v.Real
		}
		data.Variables[varName] = out
	}

	return data
}

func ExportJSON(path, name, engine string, ds *format.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encode(file, name, engine, ds)
}

func ExportJSONStdout(name, engine string, ds *format.Dataset) error {
	return encode(os.Stdout, name, engine, ds)
}

func encode(w io.Writer, name, engine string, ds *format.Dataset) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(build(name, engine, ds))
}

// ExportCSV writes the dataset in long format: one row per
// frequency/theta pair, with every real two-dimensional variable as a
// column. Complex and higher-dimensional variables are omitted, same
// as the run store's spectrum file.
func ExportCSV(path string, ds *format.Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return encodeCSV(file, ds)
}

func ExportCSVStdout(ds *format.Dataset) error {
	return encodeCSV(os.Stdout, ds)
}

func encodeCSV(w io.Writer, ds *format.Dataset) error {
	freqs := ds.Coords["frequency"]
	thetas := ds.Coords["theta"]

	// Prefer the solver-reported wavelengths over the vacuum conversion.
	wavelengths := ds.Coords["wavelength"]
	if len(wavelengths) != len(freqs) {
		wavelengths = make([]float64, len(freqs))
		for i, f := range freqs {
			wavelengths[i] = optics.SpeedOfLight / f
		}
	}

	tabular := make([]string, 0, len(ds.Vars))
	for varName, v := range ds.Vars {
		if v.IsComplex() || len(v.Dims) != 2 {
			continue
		}
		tabular = append(tabular, varName)
	}
	sort.Strings(tabular)

	cw := csv.NewWriter(w)
	header := append([]string{"frequency", "wavelength", "theta"}, tabular...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, f := range freqs {
		for j, theta := range thetas {
			row := []string{
				strconv.FormatFloat(f, 'e', 9, 64),
				strconv.FormatFloat(wavelengths[i], 'e', 9, 64),
				strconv.FormatFloat(theta, 'f', 3, 64),
			}
			for _, varName := range tabular {
				row = append(row, strconv.FormatFloat(ds.Vars[varName].Real[i*len(thetas)+j], 'e', 9, 64))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
