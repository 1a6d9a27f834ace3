package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/vrognas/redmyne-sub005/internal/engine"
	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/router"
	"github.com/vrognas/redmyne-sub005/internal/workload"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderHeatmapGolden(t *testing.T) {
	day := func(d int) time.Time { return plan.Date(2026, time.March, d) }
	cells := []engine.HeatCell{
		{Date: day(2), Utilization: 0.5, Band: workload.BandOf(0.5)},
		{Date: day(3), Utilization: 1.0, Band: workload.BandOf(1.0)},
		{Date: day(4), Utilization: 1.25, Band: workload.BandOf(1.25)},
		{Date: day(5), Utilization: 0, Band: workload.BandOf(0)},
	}

	var buf bytes.Buffer
	RenderHeatmap(&buf, cells)
	golden(t).Assert(t, "heatmap", buf.Bytes())
}

func TestRenderFlexTableGolden(t *testing.T) {
	tasks := []plan.Task{
		{ID: 1, Title: "Design review"},
		{ID: 2, Title: "Crunch task"},
		{ID: 3, Title: "Someday"},
	}
	scores := map[int]*plan.FlexibilityScore{
		1: {Status: plan.StatusOnTrack, Remaining: 25, DaysRemaining: 5, HoursRemaining: 40},
		2: {Status: plan.StatusOverbooked, Remaining: -33, DaysRemaining: 3, HoursRemaining: 24.5},
	}

	var buf bytes.Buffer
	RenderFlexTable(&buf, tasks, func(t plan.Task) *plan.FlexibilityScore {
		return scores[t.ID]
	})
	golden(t).Assert(t, "flextable", buf.Bytes())
}

func TestRenderTimelineGolden(t *testing.T) {
	design := plan.Task{ID: 1, Title: "Design review", ProjectID: 10, ProjectName: "Core"}
	impl := plan.Task{ID: 2, Title: "Implementation", ProjectID: 10, ProjectName: "Core"}

	scene := &engine.Scene{
		Rows: []layout.Row{
			{Kind: layout.RowProject, ProjectID: 10, ProjectName: "Core"},
			{Kind: layout.RowTask, Depth: 1, Task: &design, ProjectID: 10, ProjectName: "Core"},
			{Kind: layout.RowTask, Depth: 1, Task: &impl, ProjectID: 10, ProjectName: "Core"},
		},
		Bars: []engine.Bar{
			{TaskID: 1, Row: 1, X0: 0, X1: 120,
				Score: &plan.FlexibilityScore{Status: plan.StatusOnTrack, Remaining: 25}},
			{TaskID: 2, Row: 2, X0: 24, X1: 48},
		},
		Arrows: []router.Arrow{
			{Relation: plan.Relation{Type: plan.RelationPrecedes, Source: 1, Target: 2}},
		},
		Zoom:    layout.ZoomWeek,
		MinDate: plan.Date(2026, time.March, 2),
		MaxDate: plan.Date(2026, time.March, 20),
	}

	var buf bytes.Buffer
	RenderTimeline(&buf, scene, []plan.Task{design, impl})
	golden(t).Assert(t, "timeline", buf.Bytes())
}
