package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/subcommands"

	"globalalpha/internal/app"
	"globalalpha/pkg/contracts"
)

// projectFlags locate the project and its configuration
type projectFlags struct {
	baseDir    string
	configFile string
}

func (p *projectFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.baseDir, "base", "", "project root holding data/ (defaults to the working directory)")
	f.StringVar(&p.configFile, "config", "", "YAML configuration file (defaults to config.yaml under the base directory)")
}

// execute builds the application and runs batch with it
func (p *projectFlags) execute(ctx context.Context, out io.Writer, name string, batch func(*app.Application, context.Context) error) subcommands.ExitStatus {
	a, err := app.NewApplication(app.Options{BaseDir: p.baseDir, ConfigFile: p.configFile, Out: out})
	if err != nil {
		slog.Error("Failed to initialize", "command", name, "error", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Warn("Shutdown incomplete", "error", err)
		}
	}()

	if err := batch(a, ctx); err != nil {
		a.Logger.ErrorContext(ctx, "Batch failed",
			slog.String("command", name),
			slog.String("error", err.Error()))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type pipelineCmd struct {
	projectFlags
	out io.Writer
}

func (*pipelineCmd) Name() string     { return "pipeline" }
func (*pipelineCmd) Synopsis() string { return "consolidate the entity extracts into the master fact file" }
func (*pipelineCmd) Usage() string {
	return `alpha pipeline [-base <dir>] [-config <file>]

  Loads the mapping workbook and every configured entity extract found in
  the data directory, then writes Master_Consolidated_Fact.csv.
`
}

func (c *pipelineCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(ctx, c.out, c.Name(), (*app.Application).RunPipeline)
}

type analyticsCmd struct {
	projectFlags
	out io.Writer
}

func (*analyticsCmd) Name() string     { return "analytics" }
func (*analyticsCmd) Synopsis() string { return "build the ROIC report and chart from the master fact file" }
func (*analyticsCmd) Usage() string {
	return `alpha analytics [-base <dir>] [-config <file>]

  Aggregates revenue and assets per entity, computes NOPAT and ROIC and
  writes the CSV report, the executive workbook and the ROIC chart.
`
}

func (c *analyticsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(ctx, c.out, c.Name(), (*app.Application).RunAnalytics)
}

type runCmd struct {
	projectFlags
	out io.Writer
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "run the pipeline then the analytics batch" }
func (*runCmd) Usage() string {
	return `alpha run [-base <dir>] [-config <file>]

  Runs pipeline and analytics back to back. Analytics is skipped when the
  pipeline fails.
`
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return c.execute(ctx, c.out, c.Name(), (*app.Application).RunAll)
}

type versionCmd struct {
	out io.Writer
}

func (*versionCmd) Name() string             { return "version" }
func (*versionCmd) Synopsis() string         { return "print version information" }
func (*versionCmd) Usage() string            { return "alpha version\n" }
func (*versionCmd) SetFlags(_ *flag.FlagSet) {}

func (c *versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Fprintln(c.out, contracts.GetFullVersionString())
	return subcommands.ExitSuccess
}
