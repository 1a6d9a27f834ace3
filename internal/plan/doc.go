// Package plan provides the canonical data model for the workload timeline
// engine.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import plan; plan imports nothing internal. This keeps
// the model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Dates are day-granular: time.Time values normalized to UTC midnight
//     via Date/DateOf. Never compare un-normalized instants.
//   - Relations are normalized at ingest: reverse forms are flipped to
//     their forward form and self-relations dropped, so renderers only
//     ever see forward relations.
//   - No hidden mutable state: schedules and task lists are explicit
//     arguments everywhere, never package-level lookups.
package plan
