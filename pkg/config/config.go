// Package config loads presage configuration from TOML, YAML or JSON
// files via koanf.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for presage.
type Config struct {
	Analysis   AnalysisConfig  `koanf:"analysis"`
	Thresholds ThresholdConfig `koanf:"thresholds"`
	Exclude    ExcludeConfig   `koanf:"exclude"`
	Watch      WatchConfig     `koanf:"watch"`
	Output     OutputConfig    `koanf:"output"`
}

// AnalysisConfig controls which analysis stages run.
type AnalysisConfig struct {
	Patterns bool `koanf:"patterns"`
	Flow     bool `koanf:"flow"`
}

// ThresholdConfig defines heuristic thresholds.
type ThresholdConfig struct {
	MaxParameters  int `koanf:"max_parameters"`
	ComplexityWarn int `koanf:"complexity_warn"`
}

// ExcludeConfig defines file exclusion patterns for multi-file runs.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns"`
	Extensions []string `koanf:"extensions"`
	Dirs       []string `koanf:"dirs"`
}

// WatchConfig controls watch-mode behavior.
type WatchConfig struct {
	DebounceMS int `koanf:"debounce_ms"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, yaml
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Patterns: true,
			Flow:     true,
		},
		Thresholds: ThresholdConfig{
			MaxParameters:  5,
			ComplexityWarn: 15,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.bundle.js",
				"**/*.d.ts",
			},
			Extensions: []string{
				".lock",
				".map",
			},
			Dirs: []string{
				"node_modules",
				"vendor",
				".git",
				"dist",
				"build",
				"__pycache__",
			},
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file, choosing the parser from the
// extension.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault tries standard config locations, falling back to
// defaults when none parses.
func LoadOrDefault() *Config {
	names := []string{
		"presage.toml",
		"presage.yaml",
		"presage.yml",
		"presage.json",
		".presage.toml",
		".presage.yaml",
		".presage.yml",
		".presage.json",
	}

	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			if cfg, err := Load(name); err == nil {
				return cfg
			}
		}
	}
	return DefaultConfig()
}

// DefaultTOML is the config written by `presage init`.
const DefaultTOML = `[analysis]
patterns = true
flow = true

[thresholds]
max_parameters = 5
complexity_warn = 15

[exclude]
patterns = ["*.min.js", "*.bundle.js", "**/*.d.ts"]
extensions = [".lock", ".map"]
dirs = ["node_modules", "vendor", ".git", "dist", "build", "__pycache__"]

[watch]
debounce_ms = 500

[output]
format = "text"
color = true
verbose = false
`

// WriteDefault writes the default config file, refusing to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(DefaultTOML), 0o644)
}
