package operations

import (
	"context"
	"fmt"
	"log/slog"

	"globalalpha/internal/infrastructure"
)

// Runner executes registered steps in dependency order
type Runner struct {
	registry  *Registry
	telemetry *infrastructure.OTelProviders
	logger    *slog.Logger
}

// NewRunner creates a runner over registry; telemetry may be nil
func NewRunner(registry *Registry, telemetry *infrastructure.OTelProviders, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		registry:  registry,
		telemetry: telemetry,
		logger:    infrastructure.WithComponent(logger, "runner"),
	}
}

// Run executes every step once its dependencies have completed. A failed
// step skips its dependents while independent steps still run. Cancellation
// skips every step not yet started. The returned states follow execution
// order and the error is the first failure.
func (r *Runner) Run(ctx context.Context) ([]*StepState, error) {
	steps, err := r.registry.GetDependencyOrder()
	if err != nil {
		return nil, err
	}

	states := make([]*StepState, 0, len(steps))
	byID := make(map[string]*StepState, len(steps))
	var firstErr error

	for _, step := range steps {
		state := NewStepState(step.ID(), step.Name())
		states = append(states, state)
		byID[step.ID()] = state

		if err := ctx.Err(); err != nil {
			state.Skip("run cancelled")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if dep := blockedBy(step, byID); dep != "" {
			state.Skip(fmt.Sprintf("dependency %s did not complete", dep))
			r.logger.WarnContext(ctx, "Step skipped",
				slog.String("step", step.ID()),
				slog.String("dependency", dep))
			continue
		}

		state.Start()
		r.logger.InfoContext(ctx, "Step started", slog.String("step", step.ID()))

		stepCtx, end := r.telemetry.StartStage(ctx, step.ID())
		err := step.Execute(stepCtx)
		end(err)

		if err != nil {
			state.Fail(err)
			r.logger.ErrorContext(ctx, "Step failed",
				slog.String("step", step.ID()),
				slog.Duration("duration", state.Duration()),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = fmt.Errorf("step %s: %w", step.ID(), err)
			}
			continue
		}

		state.Complete()
		r.logger.InfoContext(ctx, "Step completed",
			slog.String("step", step.ID()),
			slog.Duration("duration", state.Duration()))
	}

	return states, firstErr
}

// blockedBy returns the first dependency of step that has not completed
func blockedBy(step Step, states map[string]*StepState) string {
	for _, dep := range step.GetDependencies() {
		if s, ok := states[dep]; !ok || s.GetStatus() != StepStatusCompleted {
			return dep
		}
	}
	return ""
}
