package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/presagehq/presage/internal/output"
	"github.com/presagehq/presage/pkg/engine"
	"github.com/presagehq/presage/pkg/models"
	"github.com/presagehq/presage/pkg/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for file changes and re-analyze",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Usage: "Debounce window (e.g. 500ms); defaults to config",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	paths := getPaths(c)
	absPath, err := filepath.Abs(paths[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	var debounce time.Duration
	if c.IsSet("debounce") {
		debounce = c.Duration("debounce")
	}

	watcher, err := watch.NewWatcher(absPath, cfg, debounce)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	eng := engine.New(engineOpts(cfg)...)
	verbose := c.Bool("verbose") || cfg.Output.Verbose

	watcher.SetCallback(func(path string, content []byte) {
		fr := eng.AnalyzeFile(path, string(content))
		report := output.NewReport([]models.FileResult{*fr}, verbose,
			output.WithComplexityWarn(cfg.Thresholds.ComplexityWarn))
		if err := report.RenderText(os.Stdout, !c.Bool("no-color")); err != nil {
			color.Red("Render error: %v", err)
		}
	})

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	if err := watcher.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
