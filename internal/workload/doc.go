// Package workload aggregates per-task intensity into a calendar heatmap.
//
// Each non-summary task with dates and an estimate contributes a uniform
// utilization ratio to every working day in its range; summing across
// tasks yields a per-day utilization that is banded into four levels for
// coloring. Cost is O(tasks x task-span), which is acceptable because
// spans are bounded by calendar data; callers cache the result per render
// pass and recompute only when task dates, estimates, or the schedule
// change.
package workload
