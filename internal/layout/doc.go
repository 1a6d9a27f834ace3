// Package layout converts a flat task list into the timeline's row
// sequence and maps dates to horizontal pixel coordinates.
//
// Rows are grouped by project (largest project first), nested by
// parent/child within a project, and emitted in pre-order so a summary
// task always directly precedes its subtree. A parent reference to a
// task outside the project is treated as no parent: cross-project
// nesting is not renderable.
//
// Horizontal mapping is linear between a global minimum and maximum date
// padded by a week on each side of the data extent, scaled by the zoom
// level's pixels-per-day density.
package layout
