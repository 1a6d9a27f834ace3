package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// 2025-03-03 is a Monday.
var (
	mon = plan.Date(2025, time.March, 3)
	wed = plan.Date(2025, time.March, 5)
	fri = plan.Date(2025, time.March, 7)
)

func hours(h float64) *float64 { return &h }

func TestMapper_PadsExtentByAWeek(t *testing.T) {
	tasks := []plan.Task{{ID: 1, Start: &mon, Due: &fri}}
	m := NewMapper(tasks, ZoomDay, mon)

	assert.Equal(t, plan.AddDays(mon, -7), m.MinDate())
	assert.Equal(t, plan.AddDays(fri, 7), m.MaxDate())
}

func TestMapper_XIsLinearInDays(t *testing.T) {
	tasks := []plan.Task{{ID: 1, Start: &mon, Due: &fri}}
	m := NewMapper(tasks, ZoomDay, mon)

	x0 := m.X(mon)
	assert.Equal(t, 7*ZoomDay.PixelsPerDay(), x0, "window starts 7 days before the first date")
	assert.Equal(t, x0+2*ZoomDay.PixelsPerDay(), m.X(wed))
}

func TestMapper_DateAtInvertsX(t *testing.T) {
	tasks := []plan.Task{{ID: 1, Start: &mon, Due: &fri}}
	for _, z := range []Zoom{ZoomDay, ZoomWeek, ZoomMonth} {
		m := NewMapper(tasks, z, mon)
		for d := m.MinDate(); !d.After(m.MaxDate()); d = plan.AddDays(d, 1) {
			assert.Equal(t, d, m.DateAt(m.X(d)), "zoom %s date %v", z, d)
		}
	}
}

func TestMapper_ZoomDensitiesDescend(t *testing.T) {
	zooms := []Zoom{ZoomDay, ZoomWeek, ZoomMonth, ZoomQuarter, ZoomYear}
	for i := 1; i < len(zooms); i++ {
		assert.Less(t, zooms[i].PixelsPerDay(), zooms[i-1].PixelsPerDay())
	}
}

func TestMapper_BarSpanCoversFullDueDate(t *testing.T) {
	tasks := []plan.Task{{ID: 1, Start: &mon, Due: &wed}}
	m := NewMapper(tasks, ZoomDay, mon)

	x0, x1, ok := m.BarSpan(tasks[0])
	require.True(t, ok)
	// Mon through Wed inclusive is 3 day columns.
	assert.Equal(t, 3*ZoomDay.PixelsPerDay(), x1-x0)
}

func TestMapper_BarSpanSingleDateTask(t *testing.T) {
	m := NewMapper([]plan.Task{{ID: 1, Due: &wed}}, ZoomDay, mon)

	x0, x1, ok := m.BarSpan(plan.Task{ID: 1, Due: &wed})
	require.True(t, ok)
	assert.Equal(t, ZoomDay.PixelsPerDay(), x1-x0, "due-only task renders as one day")

	x0, x1, ok = m.BarSpan(plan.Task{ID: 2, Start: &wed})
	require.True(t, ok)
	assert.Equal(t, ZoomDay.PixelsPerDay(), x1-x0, "start-only task renders as one day")
}

func TestMapper_BarSpanNoDates(t *testing.T) {
	m := NewMapper(nil, ZoomDay, mon)
	_, _, ok := m.BarSpan(plan.Task{ID: 1, EstimatedHours: hours(8)})
	assert.False(t, ok)
}

func TestMapper_NoDatedTasksFallsBackToToday(t *testing.T) {
	m := NewMapper(nil, ZoomWeek, mon)
	assert.Equal(t, plan.AddDays(mon, -7), m.MinDate())
	assert.Equal(t, plan.AddDays(mon, 7), m.MaxDate())
}

func TestParseZoom(t *testing.T) {
	assert.Equal(t, ZoomDay, ParseZoom("day"))
	assert.Equal(t, ZoomYear, ParseZoom("year"))
	assert.Equal(t, ZoomWeek, ParseZoom("bogus"), "unknown names fall back to week")
}
