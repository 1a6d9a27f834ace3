// Package gesture implements the client-side state machines for timeline
// editing gestures.
//
// Three gesture modes exist: drag-resize of a bar's edges, link-drag
// between bars, and resize of the label/timeline column split. The modes
// are mutually exclusive at any instant because their pointer-down hit
// regions are disjoint; the controller still guards against entering one
// mode while another is active.
//
// A completed resize or link gesture emits an edit intent. Intents are
// the only output of this package: the controller never talks to the
// mutation gateway itself, and cancelling a gesture before commit is
// always side-effect free.
package gesture
