// Package harness executes declarative YAML scenarios against the
// timeline engine backed by a real in-memory SQLite store.
//
// A scenario seeds a plan, applies edit steps (date changes, relation
// create/delete, undo, redo), and states expectations about the final
// render: flexibility statuses, bar and arrow counts, surviving
// relations. Runs are fully deterministic: a fixed "today", step-derived
// intent tokens, and autoincrement relation IDs that always assign the
// same sequence, so event logs can be compared against golden files.
//
// The harness is the end-to-end seam of the test suite: everything below
// the host UI (gesture intents, undo reconciliation, store side effects,
// render pass) runs unmocked.
package harness
