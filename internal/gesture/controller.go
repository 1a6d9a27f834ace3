package gesture

import (
	"errors"
	"log/slog"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Mode identifies the active gesture. Modes are mutually exclusive.
type Mode int

const (
	ModeIdle Mode = iota
	ModeResize
	ModeLink
	ModeColumn
)

// Edge identifies which end of a bar a resize drags.
type Edge int

const (
	EdgeLeft Edge = iota
	EdgeRight
)

// Column split bounds in pixels.
const (
	MinColumnWidth     = 120.0
	MaxColumnWidth     = 600.0
	DefaultColumnWidth = 280.0
)

// ErrGestureActive is returned when a gesture begins while another is in
// progress. The hit regions are disjoint so this should be unreachable
// from real pointer input, but the guard keeps the state machine honest.
var ErrGestureActive = errors.New("another gesture is already active")

// ErrNoDates is returned when a resize begins on a task without dates;
// there is no bar edge to drag.
var ErrNoDates = errors.New("task has no dates to resize")

type resizeState struct {
	taskID             int
	edge               Edge
	origStart, origDue time.Time
	curStart, curDue   time.Time
}

type linkState struct {
	sourceID  int
	candidate *int
}

// Controller is the state machine for timeline editing gestures.
//
// Not safe for concurrent use: all pointer and keyboard events arrive on
// the single-threaded event loop.
type Controller struct {
	mapper *layout.Mapper
	tokens TokenGenerator

	mode        Mode
	resize      resizeState
	link        linkState
	columnWidth float64
}

// NewController creates an idle controller.
func NewController(tokens TokenGenerator) *Controller {
	return &Controller{
		tokens:      tokens,
		columnWidth: DefaultColumnWidth,
	}
}

// SetMapper installs the coordinate mapper for the current render pass.
// Must be set before any resize gesture can snap pointer positions.
func (c *Controller) SetMapper(m *layout.Mapper) {
	c.mapper = m
}

// Mode returns the currently active gesture mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Cancel aborts any active gesture with no side effect. Bound to the
// Escape key; always safe.
func (c *Controller) Cancel() {
	if c.mode != ModeIdle {
		slog.Debug("gesture cancelled", "mode", c.mode)
	}
	c.mode = ModeIdle
	c.resize = resizeState{}
	c.link = linkState{}
}

// BeginResize enters resize mode on one edge of a task's bar.
func (c *Controller) BeginResize(t plan.Task, edge Edge) error {
	if c.mode != ModeIdle {
		return ErrGestureActive
	}
	start, due := t.EffectiveStart(), t.EffectiveDue()
	if start == nil || due == nil {
		return ErrNoDates
	}
	c.mode = ModeResize
	c.resize = resizeState{
		taskID:    t.ID,
		edge:      edge,
		origStart: plan.DateOf(*start),
		origDue:   plan.DateOf(*due),
		curStart:  plan.DateOf(*start),
		curDue:    plan.DateOf(*due),
	}
	return nil
}

// DragResize snaps the pointer position to a whole-day boundary and
// moves the dragged edge there. The dragged edge never crosses the
// opposite edge: a bar is at least one day wide.
func (c *Controller) DragResize(x float64) {
	if c.mode != ModeResize || c.mapper == nil {
		return
	}
	day := c.mapper.DateAt(x)
	switch c.resize.edge {
	case EdgeLeft:
		if day.After(c.resize.curDue) {
			day = c.resize.curDue
		}
		c.resize.curStart = day
	case EdgeRight:
		if day.Before(c.resize.curStart) {
			day = c.resize.curStart
		}
		c.resize.curDue = day
	}
}

// ResizePreview returns the snapped range while a resize is in progress,
// for optimistic bar rendering.
func (c *Controller) ResizePreview() (start, due time.Time, active bool) {
	if c.mode != ModeResize {
		return time.Time{}, time.Time{}, false
	}
	return c.resize.curStart, c.resize.curDue, true
}

// ResizeTaskID returns the task targeted by the active resize gesture,
// or 0 when no resize is in progress.
func (c *Controller) ResizeTaskID() int {
	if c.mode != ModeResize {
		return 0
	}
	return c.resize.taskID
}

// EndResize leaves resize mode. If the snapped dates differ from the
// originals it returns a date-change intent; a pure click emits nothing.
func (c *Controller) EndResize() (*Intent, bool) {
	if c.mode != ModeResize {
		return nil, false
	}
	st := c.resize
	c.mode = ModeIdle
	c.resize = resizeState{}

	if st.curStart.Equal(st.origStart) && st.curDue.Equal(st.origDue) {
		return nil, false
	}
	start, due := st.curStart, st.curDue
	intent := &Intent{
		Token:    c.tokens.Generate(),
		Kind:     IntentDateChange,
		TaskID:   st.taskID,
		NewStart: &start,
		NewDue:   &due,
	}
	slog.Debug("resize committed",
		"token", intent.Token,
		"task", st.taskID,
		"start", start,
		"due", due,
	)
	return intent, true
}

// BeginLink enters link mode from a bar's link handle.
func (c *Controller) BeginLink(sourceID int) error {
	if c.mode != ModeIdle {
		return ErrGestureActive
	}
	c.mode = ModeLink
	c.link = linkState{sourceID: sourceID}
	return nil
}

// HoverLink records the bar currently under the pointer as the candidate
// target. The source itself is never a candidate; hovering empty space
// clears the candidate.
func (c *Controller) HoverLink(taskID *int) {
	if c.mode != ModeLink {
		return
	}
	if taskID == nil || *taskID == c.link.sourceID {
		c.link.candidate = nil
		return
	}
	id := *taskID
	c.link.candidate = &id
}

// LinkCandidate returns the highlighted candidate target, if any.
func (c *Controller) LinkCandidate() (int, bool) {
	if c.mode != ModeLink || c.link.candidate == nil {
		return 0, false
	}
	return *c.link.candidate, true
}

// ReleaseLink leaves link mode. Over a valid, distinct target it returns
// the pair for the host to offer relation-type choices (see
// plan.ForwardTypes); releasing elsewhere cancels with no side effect.
func (c *Controller) ReleaseLink() (sourceID, targetID int, ok bool) {
	if c.mode != ModeLink {
		return 0, 0, false
	}
	st := c.link
	c.mode = ModeIdle
	c.link = linkState{}

	if st.candidate == nil {
		return 0, 0, false
	}
	return st.sourceID, *st.candidate, true
}

// RelationIntent mints the relation-create intent once the user picks a
// type for a released link.
func (c *Controller) RelationIntent(sourceID, targetID int, rt plan.RelationType) Intent {
	intent := Intent{
		Token:    c.tokens.Generate(),
		Kind:     IntentRelationCreate,
		SourceID: sourceID,
		TargetID: targetID,
		Type:     rt,
	}
	slog.Debug("link committed",
		"token", intent.Token,
		"source", sourceID,
		"target", targetID,
		"type", rt,
	)
	return intent
}

// BeginColumnResize enters column-resize mode. Column resizing is a pure
// display-state change and never produces an edit intent.
func (c *Controller) BeginColumnResize() error {
	if c.mode != ModeIdle {
		return ErrGestureActive
	}
	c.mode = ModeColumn
	return nil
}

// DragColumn moves the label/timeline split, clamped to the fixed bounds.
func (c *Controller) DragColumn(x float64) {
	if c.mode != ModeColumn {
		return
	}
	if x < MinColumnWidth {
		x = MinColumnWidth
	}
	if x > MaxColumnWidth {
		x = MaxColumnWidth
	}
	c.columnWidth = x
}

// EndColumnResize leaves column-resize mode.
func (c *Controller) EndColumnResize() {
	if c.mode == ModeColumn {
		c.mode = ModeIdle
	}
}

// ColumnWidth returns the current label column width.
func (c *Controller) ColumnWidth() float64 {
	return c.columnWidth
}
