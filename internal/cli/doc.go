// Package cli implements the redmyne command-line interface.
//
// Commands:
//   - demo: seed a sample plan into a local SQLite database
//   - timeline: render the workload timeline as text
//   - workload: print the per-day utilization heatmap
//   - flex: list tasks with their flexibility classification
//
// All commands share global flags for the database path, the weekly
// schedule file, the zoom level, and a fixed "today" override used to
// make renders reproducible.
package cli
