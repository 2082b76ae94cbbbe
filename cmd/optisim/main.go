package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/arvi-k/optisim/internal/config"
	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/optics"
	"github.com/arvi-k/optisim/internal/sim"
	"github.com/arvi-k/optisim/internal/stack"
	"github.com/arvi-k/optisim/internal/storage"
	"github.com/arvi-k/optisim/internal/store"
	"github.com/arvi-k/optisim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	noSave     bool
	// plot/view selection
	variable string
	angleIdx int
	// export target
	outFile string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

func main() {
	rootCmd := &cobra.Command{
		Use:   "optisim",
		Short: "layered optical media simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".optisim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a stack simulation",
		RunE:  runStack,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&variable, "var", "Rs", "variable to plot")
	plotCmd.Flags().IntVar(&angleIdx, "angle", 0, "incidence angle index")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a stored spectrum interactively",
		Args:  cobra.ExactArgs(1),
		RunE:  viewRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output path (stdout when empty)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output path (stdout when empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	indexCmd := &cobra.Command{
		Use:   "index [material]",
		Short: "print a configured material's refractive index",
		Args:  cobra.ExactArgs(1),
		RunE:  printIndex,
	}
	indexCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	indexCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, viewCmd, exportJSONCmd, exportCSVCmd, presetsCmd, indexCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return cfg, nil
}

func runStack(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	// Every engine kind is solver-backed, so a run always dials out.
	logger.Info("connecting to solver", "address", cfg.Engine.Address)
	session, err := stack.Dial(cfg.Engine.Address, 5*time.Second)
	if err != nil {
		return err
	}
	defer session.Close()

	materials, err := cfg.BuildMaterials(session)
	if err != nil {
		return err
	}
	stackStructure, err := cfg.BuildStructure(materials)
	if err != nil {
		return err
	}
	spectrum, err := cfg.BuildSpectrum()
	if err != nil {
		return err
	}
	engine, err := cfg.BuildEngine(session)
	if err != nil {
		return err
	}
	formatter, err := cfg.BuildFormatter()
	if err != nil {
		return err
	}

	s := sim.New(stackStructure, engine, spectrum)
	s.Angles = cfg.BuildAngles()
	s.Formatter = formatter

	logger.Info("running", "name", cfg.Name, "layers", stackStructure.Len(),
		"points", len(spectrum.Frequencies()), "angles", len(s.Angles))
	start := time.Now()
	result, err := s.Simulate(sim.RunParams{Options: cfg.BuildOptions()})
	if err != nil {
		return err
	}
	logger.Info("done", "elapsed", time.Since(start))

	ds, ok := result.(*format.Dataset)
	if !ok {
		// Raw or stacked-array output: print and stop.
		fmt.Printf("%+v\n", result)
		return nil
	}
	for _, w := range ds.Warnings {
		logger.Warn(w)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Name, cfg.Engine.Kind, stackStructure.Len(), ds)
	if err != nil {
		return err
	}
	fmt.Printf("saved run: %s\n", runID)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tENGINE\tLAYERS\tPOINTS\tANGLES\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.Name, r.Engine, r.Layers, r.Points, r.Angles,
			r.Timestamp.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// loadDataset rebuilds a dataset from a run's long-format CSV.
func loadDataset(st *storage.Store, runID string) (*format.Dataset, error) {
	header, rows, err := st.LoadSpectrum(runID)
	if err != nil {
		return nil, err
	}
	if len(header) < 3 || len(rows) == 0 {
		return nil, fmt.Errorf("run %s has no tabular spectrum", runID)
	}

	var freqs, wavelengths, thetas []float64
	seenFreq := map[float64]bool{}
	seenTheta := map[float64]bool{}
	for _, row := range rows {
		if !seenFreq[row[0]] {
			seenFreq[row[0]] = true
			freqs = append(freqs, row[0])
			if len(row) > 1 {
				wavelengths = append(wavelengths, row[1])
			}
		}
		if !seenTheta[row[2]] {
			seenTheta[row[2]] = true
			thetas = append(thetas, row[2])
		}
	}

	ds := format.NewDataset()
	ds.SetCoord("frequency", freqs)
	ds.SetCoord("theta", thetas)
	if len(wavelengths) == len(freqs) {
		ds.SetCoord("wavelength", wavelengths)
	}

	dims := []string{"frequency", "theta"}
	shape := []int{len(freqs), len(thetas)}
	for col := 3; col < len(header); col++ {
		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			if col < len(row) {
				values = append(values, row[col])
			}
		}
		if err := ds.AddVar(header[col], &format.Array{Dims: dims, Shape: shape, Real: values}); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ds, err := loadDataset(st, args[0])
	if err != nil {
		return err
	}
	out, err := viz.Plot(ds, variable, angleIdx, 70, 16)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func viewRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ds, err := loadDataset(st, args[0])
	if err != nil {
		return err
	}
	return viz.RunBrowser(args[0], ds)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	ds, err := loadDataset(st, args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return store.ExportJSONStdout(meta.Name, meta.Engine, ds)
	}
	if err := store.ExportJSON(outFile, meta.Name, meta.Engine, ds); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ds, err := loadDataset(st, args[0])
	if err != nil {
		return err
	}
	if outFile == "" {
		return store.ExportCSVStdout(ds)
	}
	if err := store.ExportCSV(outFile, ds); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func printIndex(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	var session stack.Session
	for _, m := range cfg.Materials {
		if m.Kind == "remote" {
			remote, err := stack.Dial(cfg.Engine.Address, 5*time.Second)
			if err != nil {
				return err
			}
			defer remote.Close()
			session = remote
			break
		}
	}

	materials, err := cfg.BuildMaterials(session)
	if err != nil {
		return err
	}
	m, ok := materials[args[0]]
	if !ok {
		return fmt.Errorf("material %q not in configuration", args[0])
	}
	spectrum, err := cfg.BuildSpectrum()
	if err != nil {
		return err
	}

	freqs := spectrum.Frequencies()
	idx, err := m.Index(freqs, optics.ComponentX)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FREQUENCY\tWAVELENGTH\tN\tK")
	for i, f := range freqs {
		fmt.Fprintf(w, "%.4e\t%.1f nm\t%.4f\t%.4e\n",
			f, optics.SpeedOfLight/f*1e9, real(idx[i]), imag(idx[i]))
	}
	return w.Flush()
}
