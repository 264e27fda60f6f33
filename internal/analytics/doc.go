// Package analytics builds the executive ROIC report from the master fact
// table.
//
// Fact rows are bucketed by case-insensitive substring match on their group
// category ("revenue", "assets"), summed per entity and merged so that every
// entity seen in either bucket gets one row. NOPAT is revenue after tax and
// ROIC is NOPAT over assets in percent, left empty when an entity has no
// asset base.
//
//	report, err := analytics.NewReporter(cfg.Report, paths, telemetry, logger, os.Stdout).Run(ctx)
package analytics
