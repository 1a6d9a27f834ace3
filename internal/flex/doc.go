// Package flex computes the flexibility classification and daily
// intensity curve for a single task.
//
// Classification compares available working time against remaining
// estimated work and yields a status used both for bar coloring and for
// urgency ordering. A task without a due date or an estimate has
// insufficient data and classifies as nil, never as an error.
package flex
