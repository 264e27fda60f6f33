package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"globalalpha/internal/infrastructure"
	"globalalpha/pkg/contracts"
)

func execute(t *testing.T, args ...string) (subcommands.ExitStatus, string) {
	t.Helper()
	infrastructure.ResetLoggerForTesting()
	t.Cleanup(infrastructure.ResetLoggerForTesting)
	t.Setenv("ALPHA_LOGGING_OUTPUT", "file")
	t.Setenv("ALPHA_REPORT_CHART_DPI", "72")

	var out bytes.Buffer
	top := flag.NewFlagSet("alpha", flag.ContinueOnError)
	commander := newCommander(top, "alpha", &out)
	require.NoError(t, top.Parse(args))
	return commander.Execute(context.Background()), out.String()
}

func TestVersion(t *testing.T) {
	status, out := execute(t, "version")
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "Global Alpha Consolidation v"+contracts.Version)
}

func TestUnknownCommand(t *testing.T) {
	status, _ := execute(t, "scrape")
	assert.Equal(t, subcommands.ExitUsageError, status)
}

func TestAnalyticsWithoutFact(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))

	status, out := execute(t, "analytics", "-base", base)
	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Contains(t, out, "not found.")
}

func TestRunFailsWithoutMapping(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))

	status, out := execute(t, "run", "-base", base)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out, "Could not find mapping file")
	assert.NotContains(t, out, "GENERATING EXECUTIVE ROIC REPORT")
}

func TestPipelineSubcommand(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(base, "data"), 0755))

	status, out := execute(t, "pipeline", "-base", base)
	assert.Equal(t, subcommands.ExitFailure, status)
	assert.Contains(t, out, "--- STARTING GLOBAL ALPHA ETL PIPELINE ---")
}
