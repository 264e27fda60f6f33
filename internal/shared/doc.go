// Package shared holds helpers used across packages that belong to no
// single stage.
//
// The testutil subpackage captures slog output so tests can assert on what
// a stage logged:
//
//	logger, logs := testutil.NewTestLogger(t)
//	p := pipeline.New(cfg, paths, nil, logger, &out)
//	...
//	testutil.AssertLogContains(t, logs, slog.LevelWarn, "No entity extracts found")
package shared
