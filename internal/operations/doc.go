// Package operations sequences the batches of a combined run.
//
// Steps are registered with their dependencies and executed in dependency
// order, each inside its own telemetry stage. A step whose dependency did not
// complete is skipped.
package operations
