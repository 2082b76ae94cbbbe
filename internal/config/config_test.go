package config

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/arvi-k/optisim/internal/format"
	"github.com/arvi-k/optisim/internal/optics"
	"github.com/arvi-k/optisim/internal/stack"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Engine.Kind != "rt" {
		t.Errorf("expected engine rt, got %s", cfg.Engine.Kind)
	}
	if cfg.Spectrum.Points <= 0 {
		t.Error("points should be positive")
	}
	if len(cfg.Structure.UnitCell) == 0 {
		t.Error("default unit cell should not be empty")
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stack.yaml")
	cfg := GetPreset("bragg")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Name != "bragg" || loaded.Structure.Periods != 10 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
	if len(loaded.Materials) != 2 {
		t.Errorf("expected 2 materials, got %d", len(loaded.Materials))
	}
}

func TestBuildMaterials(t *testing.T) {
	cfg := GetPreset("lorentz_slab")
	mats, err := cfg.BuildMaterials(nil)
	if err != nil {
		t.Fatalf("build materials failed: %v", err)
	}
	if _, ok := mats["osc"]; !ok {
		t.Fatal("oscillator material missing")
	}

	cfg = &Config{Materials: []MaterialConfig{{Name: "x", Kind: "plasma"}}}
	if _, err := cfg.BuildMaterials(nil); err == nil {
		t.Error("expected error for unknown material kind")
	}

	cfg = &Config{Materials: []MaterialConfig{{Name: "gold", Kind: "remote"}}}
	if _, err := cfg.BuildMaterials(nil); err == nil {
		t.Error("expected error for remote material without a session")
	}
}

func TestBuildStructure(t *testing.T) {
	cfg := GetPreset("bragg")
	mats, err := cfg.BuildMaterials(nil)
	if err != nil {
		t.Fatalf("build materials failed: %v", err)
	}
	m, err := cfg.BuildStructure(mats)
	if err != nil {
		t.Fatalf("build structure failed: %v", err)
	}
	if m.Len() != 10*2+2 {
		t.Errorf("expected 22 layers, got %d", m.Len())
	}
	// Unnamed incident medium is vacuum.
	idx, err := m.Index([]float64{5e14}, optics.ComponentX)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	if idx[0][0] != 1 {
		t.Errorf("incident index = %v, want vacuum", idx[0][0])
	}
	if idx[1][0] != 2.4 {
		t.Errorf("first cell index = %v, want 2.4", idx[1][0])
	}
}

func TestBuildStructureUndefinedMaterial(t *testing.T) {
	cfg := &Config{Structure: StructureConfig{
		UnitCell: []LayerConfig{{Material: "mystery", Thickness: 1e-7}},
	}}
	if _, err := cfg.BuildStructure(nil); err == nil {
		t.Error("expected error for undefined material")
	}
}

func TestBuildSpectrum(t *testing.T) {
	cfg := &Config{Spectrum: SpectrumConfig{MinWavelength: 400e-9, MaxWavelength: 800e-9, Points: 5}}
	sp, err := cfg.BuildSpectrum()
	if err != nil {
		t.Fatalf("build spectrum failed: %v", err)
	}
	wl := sp.Wavelengths()
	if len(wl) != 5 {
		t.Fatalf("expected 5 points, got %d", len(wl))
	}
	if math.Abs(wl[0]-400e-9) > 1e-15 || math.Abs(wl[4]-800e-9) > 1e-15 {
		t.Errorf("wavelength range lost: %v", wl)
	}

	cfg = &Config{Spectrum: SpectrumConfig{MinFrequency: 1e14, MaxFrequency: 2e14, Points: 3}}
	sp, err = cfg.BuildSpectrum()
	if err != nil {
		t.Fatalf("build spectrum failed: %v", err)
	}
	f := sp.Frequencies()
	if f[0] != 1e14 || f[2] != 2e14 {
		t.Errorf("frequency grid = %v", f)
	}

	cfg = &Config{}
	if _, err := cfg.BuildSpectrum(); err == nil {
		t.Error("expected error when no range is given")
	}
}

func TestBuildEngineAndFormatter(t *testing.T) {
	cfg := GetPreset("bragg_field")

	engine, err := cfg.BuildEngine(nil)
	if err != nil {
		t.Fatalf("build engine failed: %v", err)
	}
	if _, ok := engine.(*stack.FieldEngine); !ok {
		t.Errorf("engine = %T, want *stack.FieldEngine", engine)
	}

	f, err := cfg.BuildFormatter()
	if err != nil {
		t.Fatalf("build formatter failed: %v", err)
	}
	ff, ok := f.(*format.FieldFormatter)
	if !ok {
		t.Fatalf("formatter = %T, want *format.FieldFormatter", f)
	}
	if !ff.Norms {
		t.Error("norms flag not carried over")
	}

	cfg.Engine.Kind = "combined"
	f, err = cfg.BuildFormatter()
	if err != nil {
		t.Fatalf("build formatter failed: %v", err)
	}
	cf, ok := f.(*format.CombinedFormatter)
	if !ok {
		t.Fatalf("formatter = %T, want *format.CombinedFormatter", f)
	}
	if !cf.Field.Norms {
		t.Error("combined formatter should carry the field norms flag")
	}

	cfg.Engine.Kind = "warp"
	if _, err := cfg.BuildEngine(nil); err == nil {
		t.Error("expected error for unknown engine kind")
	}

	cfg.Output.Format = "netcdf"
	if _, err := cfg.BuildFormatter(); !errors.Is(err, optics.ErrUnknownOutput) {
		t.Errorf("expected ErrUnknownOutput, got %v", err)
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if len(ListPresets()) < 3 {
		t.Error("expected at least three presets")
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := GetPreset("bragg_field")
	opts := cfg.BuildOptions()
	if opts[stack.OptResolution] != 1000.0 {
		t.Errorf("resolution = %v, want 1000", opts[stack.OptResolution])
	}

	if (&Config{}).BuildOptions() != nil {
		t.Error("empty option block should yield nil")
	}
}
