package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/optics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Engine    string    `json:"engine"`
	Layers    int       `json:"layers"`
	Points    int       `json:"points"`
	Angles    int       `json:"angles"`
	Variables []string  `json:"variables"`
	Warnings  []string  `json:"warnings,omitempty"`
}

// Save writes one run directory: metadata.json plus spectrum.csv in
// long format (frequency, wavelength, theta, then every real variable
// over the frequency x theta grid). Complex amplitudes and
// higher-dimensional variables stay out of the CSV; they are recorded
// in the metadata variable list so the omission is visible.
func (s *Store) Save(name, engine string, layers int, ds *format.Dataset) (string, error) {
	runID := fmt.Sprintf("%s_%s", name, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	freqs := ds.Coords["frequency"]
	thetas := ds.Coords["theta"]

	// Prefer the solver-reported wavelengths; the vacuum-light-speed
	// conversion is only a fallback for datasets that lack them.
	wavelengths := ds.Coords["wavelength"]
	if len(wavelengths) != len(freqs) {
		wavelengths = make([]float64, len(freqs))
		for i, f := range freqs {
			wavelengths[i] = optics.SpeedOfLight / f
		}
	}

	variables := make([]string, 0, len(ds.Vars))
	for varName := range ds.Vars {
		variables = append(variables, varName)
	}
	sort.Strings(variables)

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: time.Now(),
		Engine:    engine,
		Layers:    layers,
		Points:    len(freqs),
		Angles:    len(thetas),
		Variables: variables,
		Warnings:  ds.Warnings,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "spectrum.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if len(freqs) == 0 || len(thetas) == 0 {
		return runID, nil
	}

	tabular := make([]string, 0, len(variables))
	for _, varName := range variables {
		v := ds.Vars[varName]
		if v.IsComplex() || len(v.Dims) != 2 {
			continue
		}
		tabular = append(tabular, varName)
	}

	header := []string{"frequency", "wavelength", "theta"}
	header = append(header, tabular...)
	if err := w.Write(header); err != nil {
		return "", err
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
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSpectrum reads a run's CSV back: the header and one row of
// floats per record.
func (s *Store) LoadSpectrum(runID string) ([]string, [][]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "spectrum.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, [][]float64{}, nil
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row := make([]float64, 0, len(record))
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
