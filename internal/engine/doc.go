// Package engine orchestrates the workload timeline render pass and
// routes edits to the remote system.
//
// ARCHITECTURE:
//
// Single-threaded, cooperative, event-driven. All layout, classification,
// and aggregation is synchronous pure computation triggered by a render;
// all remote mutations are awaited sequentially. No two mutations are
// ever in flight at once: the gesture controller admits one gesture at a
// time and ApplyIntent blocks until the gateway resolves.
//
// Render Data Flow:
//  1. Issue source snapshot + weekly schedule enter Render()
//  2. Layout produces rows and the date-to-pixel mapper
//  3. Flexibility classification colors each bar
//  4. The router draws relation arrows between laid-out bars
//  5. Workload aggregation fills the calendar heatmap
//
// The output is a renderer-agnostic Scene; the host surface translates
// it into its own primitives (vector graphics, canvas, terminal cells).
//
// STATE DISCIPLINE:
//
// The source of truth for every render is the last snapshot from the
// issue source. After a successful date edit the engine applies the same
// change to its local copy for immediate optimistic feedback, then
// refreshes the snapshot, because the gateway may apply side effects
// beyond the requested field. On a rejected edit nothing is mutated and
// the next render simply shows the unmodified snapshot.
package engine
