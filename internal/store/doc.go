// Package store provides a SQLite-backed issue source and mutation
// gateway.
//
// It is the local collaborator implementation used by the CLI and by
// end-to-end tests: the engine core only ever sees the IssueSource and
// MutationGateway interfaces, so a REST-backed implementation can be
// swapped in by the host without touching the core.
//
// The store reproduces the remote system's documented behaviors that the
// core must tolerate:
//   - relation IDs come from an autoincrement sequence, so re-creating a
//     deleted relation always yields a fresh ID
//   - creating a precedes relation reschedules the target task to start
//     after the source's due date, preserving the target's duration
//   - linking an issue to one of its own subtasks is rejected
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Task titles are NFC-normalized on read so renders and golden files are
// stable regardless of how the source encoded them.
package store
