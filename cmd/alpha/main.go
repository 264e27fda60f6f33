package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"globalalpha/internal/infrastructure"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	commander := newCommander(flag.CommandLine, path.Base(os.Args[0]), os.Stdout)
	flag.Parse()

	status := commander.Execute(infrastructure.EnsureRunID(ctx))
	stop()
	os.Exit(int(status))
}

// newCommander registers the batch subcommands on top
func newCommander(top *flag.FlagSet, name string, stdout io.Writer) *subcommands.Commander {
	commander := subcommands.NewCommander(top, name)
	commander.Output = stdout

	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&pipelineCmd{out: stdout}, "batches")
	commander.Register(&analyticsCmd{out: stdout}, "batches")
	commander.Register(&runCmd{out: stdout}, "batches")
	commander.Register(&versionCmd{out: stdout}, "")
	return commander
}
