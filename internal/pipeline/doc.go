// Package pipeline runs the consolidation batch: it loads the mapping
// workbook, the subsidiary extracts present in the data directory and
// writes the master fact table.
//
// Progress is printed to the console as each step completes, while the
// structured log and one span per stage carry the details.
package pipeline
