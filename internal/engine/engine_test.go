package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrognas/redmyne-sub005/internal/gesture"
	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/testutil"
	"github.com/vrognas/redmyne-sub005/internal/workload"
)

// 2025-03-03 is a Monday.
var (
	mon = plan.Date(2025, time.March, 3)
	tue = plan.Date(2025, time.March, 4)
	wed = plan.Date(2025, time.March, 5)
	fri = plan.Date(2025, time.March, 7)
)

func hours(h float64) *float64 { return &h }

func fixedToday() func() time.Time {
	return func() time.Time { return mon }
}

func newTestEngine(t *testing.T, src *memSource) *Engine {
	t.Helper()
	e := New(src, src, plan.NewWeeklySchedule(8, 8, 8, 8, 8, 0, 0),
		WithToday(fixedToday()),
		WithZoom(layout.ZoomDay),
		WithTokens(gesture.NewFixedGenerator("tok-1", "tok-2", "tok-3", "tok-4")),
	)
	require.NoError(t, e.Refresh(context.Background()))
	return e
}

func sampleTasks() []plan.Task {
	return []plan.Task{
		{ID: 1, Title: "api design", ProjectID: 10, ProjectName: "backend",
			Start: &mon, Due: &wed, EstimatedHours: hours(24)},
		{ID: 2, Title: "api impl", ProjectID: 10, ProjectName: "backend",
			Start: &wed, Due: &fri, EstimatedHours: hours(16),
			Relations: []plan.Relation{{ID: 50, Type: plan.RelationFollows, Source: 2, Target: 1}}},
		{ID: 3, Title: "docs", ProjectID: 20, ProjectName: "writing",
			Due: &fri, EstimatedHours: hours(4)},
	}
}

func TestEngine_RenderScene(t *testing.T) {
	e := newTestEngine(t, newMemSource(sampleTasks()...))

	scene := e.Render()
	require.NotNil(t, scene)

	// 2 project headers + 3 task rows.
	assert.Len(t, scene.Rows, 5)
	assert.Len(t, scene.Bars, 3)
	assert.Len(t, scene.Arrows, 1, "the follows relation renders as one precedes arrow")
	assert.Equal(t, plan.RelationPrecedes, scene.Arrows[0].Relation.Type)
	assert.Equal(t, gesture.DefaultColumnWidth, scene.ColumnWidth)

	// Heatmap covers the padded window with one cell per day.
	wantDays := plan.DaysBetween(scene.MinDate, scene.MaxDate) + 1
	assert.Len(t, scene.Heatmap, wantDays)
}

func TestEngine_RenderClassifiesBars(t *testing.T) {
	e := newTestEngine(t, newMemSource(sampleTasks()...))

	scene := e.Render()
	byTask := make(map[int]Bar)
	for _, b := range scene.Bars {
		byTask[b.TaskID] = b
	}

	require.NotNil(t, byTask[1].Score)
	assert.Equal(t, plan.StatusOnTrack, byTask[1].Score.Status, "24h in 24 available hours")
	require.NotNil(t, byTask[2].Score)
	assert.Equal(t, plan.StatusOnTrack, byTask[2].Score.Status)
}

func TestEngine_RenderHeatmapBands(t *testing.T) {
	// Two tasks stacked on the same days push Monday over capacity.
	src := newMemSource(
		plan.Task{ID: 1, ProjectID: 1, Start: &mon, Due: &tue, EstimatedHours: hours(16)},
		plan.Task{ID: 2, ProjectID: 1, Start: &mon, Due: &tue, EstimatedHours: hours(8)},
	)
	e := newTestEngine(t, src)

	scene := e.Render()
	var monday *HeatCell
	for i := range scene.Heatmap {
		if scene.Heatmap[i].Date.Equal(mon) {
			monday = &scene.Heatmap[i]
		}
	}
	require.NotNil(t, monday)
	assert.Equal(t, 1.5, monday.Utilization)
	assert.Equal(t, workload.BandCritical, monday.Band)
}

func TestEngine_SummaryBarsAreNotClassified(t *testing.T) {
	parent := 1
	src := newMemSource(
		plan.Task{ID: 1, ProjectID: 1, Start: &mon, Due: &fri, EstimatedHours: hours(40)},
		plan.Task{ID: 2, ProjectID: 1, ParentID: &parent, Start: &mon, Due: &wed, EstimatedHours: hours(24)},
	)
	e := newTestEngine(t, src)

	scene := e.Render()
	for _, b := range scene.Bars {
		if b.TaskID == 1 {
			assert.True(t, b.Summary)
			assert.Nil(t, b.Score, "summary dates are display-only aggregates")
			assert.Zero(t, b.Intensity, "summary bars carry no heat shade")
		}
	}
}

func TestEngine_ApplyDateChangeRefreshesSnapshot(t *testing.T) {
	src := newMemSource(sampleTasks()...)
	e := newTestEngine(t, src)
	ctx := context.Background()

	newDue := fri
	err := e.ApplyIntent(ctx, gesture.Intent{
		Token: "tok-1", Kind: gesture.IntentDateChange,
		TaskID: 1, NewStart: &mon, NewDue: &newDue,
	})
	require.NoError(t, err)

	for _, task := range e.Tasks() {
		if task.ID == 1 {
			assert.Equal(t, fri, *task.Due)
		}
	}
	assert.True(t, e.History().CanUndo())
}

func TestEngine_RejectedEditLeavesSnapshotUntouched(t *testing.T) {
	src := newMemSource(sampleTasks()...)
	e := newTestEngine(t, src)
	src.failNext = errors.New("validation failed")

	newDue := fri
	err := e.ApplyIntent(context.Background(), gesture.Intent{
		Token: "tok-1", Kind: gesture.IntentDateChange,
		TaskID: 1, NewStart: &mon, NewDue: &newDue,
	})
	require.Error(t, err)

	for _, task := range e.Tasks() {
		if task.ID == 1 {
			assert.Equal(t, wed, *task.Due, "pre-edit data survives a rejection")
		}
	}
	assert.False(t, e.History().CanUndo())
}

func TestEngine_RelationCreateUndoRedo(t *testing.T) {
	src := newMemSource(sampleTasks()...)
	e := newTestEngine(t, src)
	ctx := context.Background()

	before := len(src.relations())
	err := e.ApplyIntent(ctx, gesture.Intent{
		Token: "tok-1", Kind: gesture.IntentRelationCreate,
		SourceID: 1, TargetID: 3, Type: plan.RelationBlocks,
	})
	require.NoError(t, err)
	require.Len(t, src.relations(), before+1)

	require.NoError(t, e.Undo(ctx))
	assert.Len(t, src.relations(), before, "undo deletes the created relation")

	require.NoError(t, e.Redo(ctx))
	assert.Len(t, src.relations(), before+1)
}

func TestEngine_DeleteRelationRequiresSnapshotMembership(t *testing.T) {
	e := newTestEngine(t, newMemSource(sampleTasks()...))

	err := e.DeleteRelation(context.Background(), "tok-1", 999)
	assert.Error(t, err)
}

func TestEngine_DeleteRelationUndo(t *testing.T) {
	src := newMemSource(sampleTasks()...)
	e := newTestEngine(t, src)
	ctx := context.Background()

	// The snapshot's follows relation normalizes to precedes with ID 50.
	require.NoError(t, e.DeleteRelation(ctx, "tok-1", 50))
	assert.Empty(t, src.relations())

	require.NoError(t, e.Undo(ctx))
	rels := src.relations()
	require.Len(t, rels, 1)
	assert.NotEqual(t, 50, rels[0].ID, "re-creation assigns a fresh ID")
}

func TestEngine_OptimisticResizePreviewChangesBarOnly(t *testing.T) {
	src := newMemSource(sampleTasks()...)
	e := newTestEngine(t, src)

	// Render once to install the mapper, then start a resize.
	scene := e.Render()
	var original Bar
	for _, b := range scene.Bars {
		if b.TaskID == 1 {
			original = b
		}
	}

	task := e.Tasks()[0]
	require.NoError(t, e.Controller().BeginResize(task, gesture.EdgeRight))
	e.Controller().DragResize(original.X1 + 2*layout.ZoomDay.PixelsPerDay())

	preview := e.Render()
	for _, b := range preview.Bars {
		if b.TaskID == 1 {
			assert.Greater(t, b.X1, original.X1, "dragged bar grows optimistically")
		}
	}
	for _, task := range e.Tasks() {
		if task.ID == 1 {
			assert.Equal(t, wed, *task.Due, "snapshot is untouched until commit")
		}
	}
	e.Controller().Cancel()
}

func TestEngine_RankTasks(t *testing.T) {
	src := newMemSource(
		plan.Task{ID: 1, ProjectID: 1, Start: &mon, Due: &fri, EstimatedHours: hours(8)},  // generous
		plan.Task{ID: 2, ProjectID: 1, Start: &mon, Due: &tue, EstimatedHours: hours(40)}, // overbooked
		plan.Task{ID: 3, ProjectID: 1, Title: "no data"},
		plan.Task{ID: 4, ProjectID: 1, Start: &mon, Due: &wed, EstimatedHours: hours(22)}, // at risk
	)
	e := newTestEngine(t, src)

	ranked := e.RankTasks()
	ids := make([]int, len(ranked))
	for i, task := range ranked {
		ids[i] = task.ID
	}
	assert.Equal(t, []int{2, 4, 1, 3}, ids,
		"overbooked first, unclassifiable last")
}

func TestEngine_SetScheduleChangesClassification(t *testing.T) {
	src := newMemSource(
		plan.Task{ID: 1, ProjectID: 1, Start: &mon, Due: &wed, EstimatedHours: hours(24)},
	)
	e := newTestEngine(t, src)

	score := e.Classify(e.Tasks()[0])
	require.NotNil(t, score)
	require.Equal(t, plan.StatusOnTrack, score.Status)

	// Half-capacity schedule: the same task is now overbooked.
	e.SetSchedule(plan.NewWeeklySchedule(4, 4, 4, 4, 4, 0, 0))
	score = e.Classify(e.Tasks()[0])
	require.NotNil(t, score)
	assert.Equal(t, plan.StatusOverbooked, score.Status)
}

func TestEngine_ClassificationDriftsAsDaysPass(t *testing.T) {
	clock := testutil.NewClock(mon)
	src := newMemSource(plan.Task{
		ID: 1, Title: "api design", ProjectID: 10, ProjectName: "backend",
		Start: &mon, Due: &fri, EstimatedHours: hours(32),
	})
	e := New(src, src, plan.NewWeeklySchedule(8, 8, 8, 8, 8, 0, 0),
		WithToday(clock.Now), WithZoom(layout.ZoomDay))
	require.NoError(t, e.Refresh(context.Background()))

	// Monday: 40h available against 32h of work.
	score := e.Classify(e.Tasks()[0])
	require.NotNil(t, score)
	assert.Equal(t, plan.StatusOnTrack, score.Status)
	assert.Equal(t, 25, score.Remaining)

	// Wednesday: only 24h left for the same 32h.
	clock.Advance(2)
	score = e.Classify(e.Tasks()[0])
	require.NotNil(t, score)
	assert.Equal(t, plan.StatusOverbooked, score.Status)
	assert.Equal(t, -25, score.Remaining)
}
