package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"globalalpha/internal/app"
	"globalalpha/internal/infrastructure"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run consolidates the extracts under the base directory and returns the
// process exit code
func run(args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	baseDir := flags.String("base", "", "project root holding data/ (defaults to the working directory)")
	configFile := flags.String("config", "", "YAML configuration file (defaults to config.yaml under the base directory)")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	a, err := app.NewApplication(app.Options{BaseDir: *baseDir, ConfigFile: *configFile, Out: stdout})
	if err != nil {
		slog.Error("Failed to initialize pipeline", "error", err)
		return 1
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Shutdown incomplete", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = infrastructure.EnsureRunID(ctx)

	if err := a.RunPipeline(ctx); err != nil {
		a.Logger.ErrorContext(ctx, "Pipeline failed", slog.String("error", err.Error()))
		return 1
	}
	return 0
}
