package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/flex"
	"github.com/vrognas/redmyne-sub005/internal/gesture"
	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/router"
	"github.com/vrognas/redmyne-sub005/internal/schedule"
	"github.com/vrognas/redmyne-sub005/internal/undo"
	"github.com/vrognas/redmyne-sub005/internal/workload"
)

// IssueSource supplies the task list on demand. The engine treats every
// snapshot as read-only and refreshes it after each successful mutation.
type IssueSource interface {
	Snapshot(ctx context.Context) ([]plan.Task, error)
}

// Engine ties the timeline components together over one issue source and
// one mutation gateway.
//
// Not safe for concurrent use: the engine is single-threaded by design.
type Engine struct {
	source IssueSource
	log    *undo.Log
	calc   *schedule.Calc
	ctrl   *gesture.Controller

	tasks []plan.Task
	rels  []plan.Relation

	zoom  layout.Zoom
	today func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithZoom sets the initial zoom level (default week).
func WithZoom(z layout.Zoom) Option {
	return func(e *Engine) { e.zoom = z }
}

// WithToday fixes the engine's notion of the current day. Tests and
// golden renders use this for determinism; production defaults to the
// wall clock.
func WithToday(today func() time.Time) Option {
	return func(e *Engine) { e.today = today }
}

// WithTokens sets the intent token generator (default UUIDv7).
func WithTokens(gen gesture.TokenGenerator) Option {
	return func(e *Engine) { e.ctrl = gesture.NewController(gen) }
}

// New creates an engine over the given collaborators.
func New(source IssueSource, gw undo.MutationGateway, ws plan.WeeklySchedule, opts ...Option) *Engine {
	e := &Engine{
		source: source,
		log:    undo.NewLog(gw),
		calc:   schedule.NewCalc(ws),
		ctrl:   gesture.NewController(gesture.UUIDv7Generator{}),
		zoom:   layout.ZoomWeek,
		today:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Refresh replaces the engine's snapshot from the issue source and
// normalizes the relation set for rendering.
func (e *Engine) Refresh(ctx context.Context) error {
	tasks, err := e.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot issue source: %w", err)
	}
	e.tasks = tasks

	var rels []plan.Relation
	for _, t := range tasks {
		rels = append(rels, t.Relations...)
	}
	e.rels = plan.NormalizeRelations(rels)

	slog.Debug("snapshot refreshed", "tasks", len(tasks), "relations", len(e.rels))
	return nil
}

// SetSchedule replaces the weekly schedule, invalidating all memoized
// working-time results.
func (e *Engine) SetSchedule(ws plan.WeeklySchedule) {
	e.calc.SetSchedule(ws)
}

// SetZoom changes the timeline's horizontal density.
func (e *Engine) SetZoom(z layout.Zoom) {
	e.zoom = z
}

// Controller returns the gesture state machine so the host surface can
// forward pointer and keyboard events.
func (e *Engine) Controller() *gesture.Controller {
	return e.ctrl
}

// History returns the undo/redo log for host toolbar state.
func (e *Engine) History() *undo.Log {
	return e.log
}

// Tasks returns the current snapshot.
func (e *Engine) Tasks() []plan.Task {
	return e.tasks
}

// Classify returns the flexibility score for one task under the current
// schedule, or nil for insufficient data.
func (e *Engine) Classify(t plan.Task) *plan.FlexibilityScore {
	return flex.Classify(t, e.calc, e.today(), nil)
}

// Render produces the scene for the current snapshot. Pure computation:
// no mutations, no I/O.
func (e *Engine) Render() *Scene {
	today := plan.DateOf(e.today())
	rows := layout.Rows(e.tasks)
	mapper := layout.NewMapper(e.tasks, e.zoom, today)
	e.ctrl.SetMapper(mapper)

	previewStart, previewDue, previewActive := e.ctrl.ResizePreview()

	var bars []Bar
	routerBars := make(map[int]router.Bar, len(rows))
	for i, r := range rows {
		if r.Kind != layout.RowTask {
			continue
		}
		t := *r.Task
		if previewActive && barBeingResized(e.ctrl, t.ID) {
			// Optimistic geometry while the drag is in progress.
			t.Start, t.Due = &previewStart, &previewDue
		}
		x0, x1, ok := mapper.BarSpan(t)
		if !ok {
			continue
		}

		// Summary bars aggregate their children and carry neither a
		// score nor a heat shade of their own.
		var intensity float64
		var score *plan.FlexibilityScore
		if !r.IsSummary {
			intensity = flex.Intensity(t, e.calc, today)
			if intensity > maxDisplayIntensity {
				intensity = maxDisplayIntensity
			}
			score = flex.Classify(t, e.calc, today, nil)
		}
		bars = append(bars, Bar{
			TaskID:    t.ID,
			Row:       i,
			X0:        x0,
			X1:        x1,
			Y:         r.Y,
			Summary:   r.IsSummary,
			DoneRatio: t.DoneRatio,
			Score:     score,
			Intensity: intensity,
		})
		routerBars[t.ID] = router.Bar{Row: i, X0: x0, X1: x1, CenterY: r.CenterY()}
	}

	util := workload.Aggregate(e.tasks, e.calc, mapper.MinDate(), mapper.MaxDate())
	heat := make([]HeatCell, 0, len(util))
	for d := mapper.MinDate(); !d.After(mapper.MaxDate()); d = plan.AddDays(d, 1) {
		heat = append(heat, HeatCell{Date: d, Utilization: util[d], Band: workload.BandOf(util[d])})
	}

	return &Scene{
		Rows:        rows,
		Bars:        bars,
		Arrows:      router.Routes(e.rels, routerBars),
		Heatmap:     heat,
		ColumnWidth: e.ctrl.ColumnWidth(),
		Zoom:        e.zoom,
		MinDate:     mapper.MinDate(),
		MaxDate:     mapper.MaxDate(),
	}
}

// barBeingResized reports whether the active resize targets the task.
func barBeingResized(c *gesture.Controller, taskID int) bool {
	// The preview is only active in resize mode, and a resize holds
	// exactly one task; matching on the preview task keeps other bars at
	// their snapshot geometry.
	return c.ResizeTaskID() == taskID
}

// ApplyIntent resolves an edit intent against the current snapshot and
// routes it through the undo log to the gateway. On success the snapshot
// is refreshed, because the gateway may have applied side effects beyond
// the requested change. On rejection nothing is committed and the error
// carries the gateway message for the host to surface.
func (e *Engine) ApplyIntent(ctx context.Context, intent gesture.Intent) error {
	switch intent.Kind {
	case gesture.IntentDateChange:
		t, ok := e.task(intent.TaskID)
		if !ok {
			return fmt.Errorf("date change for unknown task %d", intent.TaskID)
		}
		err := e.log.ApplyDateChange(ctx, intent.Token, intent.TaskID,
			t.Start, t.Due, intent.NewStart, intent.NewDue)
		if err != nil {
			return err
		}
		// In-place optimistic update so the view is correct even if the
		// refresh below fails; the refresh remains the source of truth.
		e.mutateDates(intent.TaskID, intent.NewStart, intent.NewDue)

	case gesture.IntentRelationCreate:
		if _, err := e.log.ApplyRelationCreate(ctx, intent.Token,
			intent.SourceID, intent.TargetID, intent.Type); err != nil {
			return err
		}

	default:
		return fmt.Errorf("unknown intent kind %d", intent.Kind)
	}

	return e.Refresh(ctx)
}

// DeleteRelation removes a relation through the undo log. The relation
// must come from the current snapshot so undo can re-create it.
func (e *Engine) DeleteRelation(ctx context.Context, token string, relationID int) error {
	for _, r := range e.rels {
		if r.ID == relationID {
			if err := e.log.ApplyRelationDelete(ctx, token, r); err != nil {
				return err
			}
			return e.Refresh(ctx)
		}
	}
	return fmt.Errorf("relation %d not in current snapshot", relationID)
}

// Undo reverses the most recent edit and refreshes the snapshot. A
// failed compensation leaves the history and snapshot untouched.
func (e *Engine) Undo(ctx context.Context) error {
	if err := e.log.Undo(ctx); err != nil {
		return err
	}
	return e.Refresh(ctx)
}

// Redo reapplies the most recently undone edit.
func (e *Engine) Redo(ctx context.Context) error {
	if err := e.log.Redo(ctx); err != nil {
		return err
	}
	return e.Refresh(ctx)
}

// RankTasks orders tasks by urgency: status enum order first (overbooked
// before at-risk before on-track before completed), then lower remaining
// slack, then ID for stability. Tasks without a classification sort
// last.
func (e *Engine) RankTasks() []plan.Task {
	type ranked struct {
		t     plan.Task
		score *plan.FlexibilityScore
	}
	rs := make([]ranked, 0, len(e.tasks))
	for _, t := range e.tasks {
		rs = append(rs, ranked{t, e.Classify(t)})
	}
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := rs[i].score, rs[j].score
		switch {
		case a == nil && b == nil:
			return rs[i].t.ID < rs[j].t.ID
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Status != b.Status:
			return a.Status < b.Status
		case a.Remaining != b.Remaining:
			return a.Remaining < b.Remaining
		default:
			return rs[i].t.ID < rs[j].t.ID
		}
	})
	out := make([]plan.Task, len(rs))
	for i, r := range rs {
		out[i] = r.t
	}
	return out
}

func (e *Engine) task(id int) (plan.Task, bool) {
	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return plan.Task{}, false
}

func (e *Engine) mutateDates(id int, start, due *time.Time) {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			e.tasks[i].Start = start
			e.tasks[i].Due = due
			return
		}
	}
}
