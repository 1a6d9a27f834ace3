// Package router computes arrow paths between laid-out bars for task
// relations.
//
// The router is a heuristic planar router, not a general obstacle-avoiding
// pathfinder: it handles five geometric cases in a fixed priority order
// (same-row forward, near-aligned rows, different-rows forward, same-row
// backward, different-rows backward) and makes no guarantee of zero
// overlap with unrelated bars in dense graphs.
//
// Temporal relation types (blocks, precedes) connect the source's end
// edge to the target's start edge; non-temporal types connect bar
// centers. Every path stops short of the target by a fixed arrow-length
// margin so the arrowhead renders cleanly.
package router
