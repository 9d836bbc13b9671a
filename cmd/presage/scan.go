package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/presagehq/presage/internal/fileproc"
	"github.com/presagehq/presage/internal/output"
	"github.com/presagehq/presage/internal/progress"
	"github.com/presagehq/presage/internal/scanner"
	"github.com/presagehq/presage/pkg/engine"
	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/patterns"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan for risky text patterns only (no AST analysis)",
		ArgsUsage: "[path...]",
		Action:    runScanCmd,
	}
}

type fileIssues struct {
	Path   string         `json:"path" yaml:"path"`
	Issues []models.Issue `json:"issues" yaml:"issues"`
}

func runScanCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
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

	sc := patterns.New()
	tracker := progress.NewTracker("Scanning...", len(files))
	results, procErrs := fileproc.Map(c.Context, files,
		func(_ *engine.Engine, path string) (fileIssues, error) {
			content, err := os.ReadFile(path)
			if err != nil {
				return fileIssues{}, err
			}
			return fileIssues{Path: path, Issues: sc.Scan(string(content))}, nil
		},
		tracker.Tick,
	)
	tracker.FinishSuccess()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText && formatter.Format() != output.FormatMarkdown {
		return formatter.Output(results)
	}

	var rows [][]string
	total := 0
	for _, fr := range results {
		for _, is := range fr.Issues {
			total++
			sev := string(is.Severity)
			if formatter.Colored() {
				sev = colorSeverity(is.Severity)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%s:%d:%d", fr.Path, is.Line, is.Column),
				is.CodePattern,
				sev,
				truncate(is.Message, 60),
			})
		}
	}

	if total == 0 {
		color.Green("No risky patterns found in %d file(s)", len(files))
		return nil
	}

	table := output.NewTable(
		"Risky Patterns",
		[]string{"Location", "Pattern", "Severity", "Message"},
		rows,
		results,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if procErrs != nil && procErrs.HasErrors() {
		color.Yellow("%d file(s) could not be read", len(procErrs.Errors))
	}
	return nil
}
