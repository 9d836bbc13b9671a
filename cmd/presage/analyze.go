package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/presagehq/presage/internal/fileproc"
	"github.com/presagehq/presage/internal/output"
	"github.com/presagehq/presage/internal/progress"
	"github.com/presagehq/presage/internal/scanner"
	"github.com/presagehq/presage/pkg/config"
	"github.com/presagehq/presage/pkg/engine"
	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/parser"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Run the full analysis pipeline on files or directories",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdin",
				Usage: "Read source from stdin instead of paths",
			},
			&cli.StringFlag{
				Name:  "language",
				Value: "javascript",
				Usage: "Language for stdin input",
			},
			&cli.BoolFlag{
				Name:  "fail-on-critical",
				Value: true,
				Usage: "Exit with status 1 when critical issues are found",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if c.Bool("stdin") {
		return analyzeStdin(c, cfg, formatter)
	}

	scan := scanner.New(cfg)
	files, err := scan.ScanPaths(getPaths(c))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Analyzing...", len(files))
	results, procErrs := fileproc.Map(c.Context, files,
		func(eng *engine.Engine, path string) (models.FileResult, error) {
			content, err := os.ReadFile(path)
			if err != nil {
				return models.FileResult{}, err
			}
			return *eng.AnalyzeFile(path, string(content)), nil
		},
		tracker.Tick,
		engineOpts(cfg)...,
	)
	tracker.FinishSuccess()

	report := output.NewReport(results, c.Bool("verbose") || cfg.Output.Verbose,
		output.WithComplexityWarn(cfg.Thresholds.ComplexityWarn))
	if err := formatter.Output(report); err != nil {
		return err
	}

	if procErrs != nil && procErrs.HasErrors() {
		color.Yellow("\n%d file(s) could not be processed:", len(procErrs.Errors))
		for _, pe := range procErrs.Errors {
			fmt.Fprintf(os.Stderr, "  - %v\n", pe)
		}
	}

	if c.Bool("fail-on-critical") && report.HasCritical() {
		return cli.Exit("", 1)
	}
	return nil
}

// analyzeStdin analyzes a single source read from standard input.
func analyzeStdin(c *cli.Context, cfg *config.Config, formatter *output.Formatter) error {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	lang := parser.Language(c.String("language"))
	eng := engine.New(engineOpts(cfg)...)
	result := eng.Analyze(string(source), lang)

	report := output.NewReport([]models.FileResult{{
		Path:     "<stdin>",
		Language: string(lang),
		Result:   *result,
	}}, c.Bool("verbose"),
		output.WithComplexityWarn(cfg.Thresholds.ComplexityWarn))

	if err := formatter.Output(report); err != nil {
		return err
	}
	if c.Bool("fail-on-critical") && report.HasCritical() {
		return cli.Exit("", 1)
	}
	return nil
}
