package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Analysis.Patterns || !cfg.Analysis.Flow {
		t.Error("both analysis stages should default on")
	}
	if cfg.Thresholds.MaxParameters != 5 {
		t.Errorf("MaxParameters = %d, want 5", cfg.Thresholds.MaxParameters)
	}
	if cfg.Watch.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want 500", cfg.Watch.DebounceMS)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Output.Format)
	}

	found := false
	for _, d := range cfg.Exclude.Dirs {
		if d == "node_modules" {
			found = true
		}
	}
	if !found {
		t.Error("node_modules should be excluded by default")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presage.toml")
	content := `[thresholds]
max_parameters = 3

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Thresholds.MaxParameters != 3 {
		t.Errorf("MaxParameters = %d, want 3", cfg.Thresholds.MaxParameters)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	// Untouched sections keep defaults.
	if cfg.Watch.DebounceMS != 500 {
		t.Errorf("DebounceMS = %d, want default 500", cfg.Watch.DebounceMS)
	}
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presage.yaml")
	content := "thresholds:\n  max_parameters: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Thresholds.MaxParameters != 7 {
		t.Errorf("MaxParameters = %d, want 7", cfg.Thresholds.MaxParameters)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presage.json")
	content := `{"watch": {"debounce_ms": 250}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Watch.DebounceMS != 250 {
		t.Errorf("DebounceMS = %d, want 250", cfg.Watch.DebounceMS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/presage.toml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOrDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(orig)

	cfg := LoadOrDefault()
	if cfg.Thresholds.MaxParameters != 5 {
		t.Error("expected defaults when no config file exists")
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presage.toml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault failed: %v", err)
	}

	// The generated file must round-trip through Load.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	if cfg.Thresholds.MaxParameters != 5 {
		t.Errorf("MaxParameters = %d, want 5", cfg.Thresholds.MaxParameters)
	}

	if err := WriteDefault(path); err == nil {
		t.Error("WriteDefault must refuse to overwrite")
	}
}
