// Package app wires the batch binaries together.
//
// NewApplication loads the configuration, creates the output directories and
// starts logging and telemetry. The batches then run through RunPipeline,
// RunAnalytics or RunAll, and Close flushes telemetry at exit:
//
//	a, err := app.NewApplication(app.Options{BaseDir: base})
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//	return a.RunAll(ctx)
package app
