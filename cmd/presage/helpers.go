package main

import (
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/presagehq/presage/internal/output"
	"github.com/presagehq/presage/pkg/config"
	"github.com/presagehq/presage/pkg/engine"
	"github.com/presagehq/presage/pkg/models"
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// loadConfig honors the --config flag, otherwise probes standard
// locations.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// engineOpts translates the analysis config into engine options.
func engineOpts(cfg *config.Config) []engine.Option {
	return []engine.Option{
		engine.WithMaxParams(cfg.Thresholds.MaxParameters),
		engine.WithPatterns(cfg.Analysis.Patterns),
		engine.WithFlow(cfg.Analysis.Flow),
	}
}

// newFormatter builds a formatter from the global flags.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	colored := !c.Bool("no-color")
	return output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), colored)
}

// colorSeverity renders a severity label with its conventional color.
func colorSeverity(sev models.Severity) string {
	switch sev {
	case models.SeverityCritical:
		return color.New(color.FgRed, color.Bold).Sprint(string(sev))
	case models.SeverityHigh:
		return color.RedString(string(sev))
	case models.SeverityMedium:
		return color.YellowString(string(sev))
	case models.SeverityLow:
		return color.GreenString(string(sev))
	default:
		return string(sev)
	}
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
