package layout

import (
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Zoom is a named pixel-per-day density for the timeline's horizontal
// scale.
type Zoom int

const (
	ZoomDay Zoom = iota
	ZoomWeek
	ZoomMonth
	ZoomQuarter
	ZoomYear
)

// PixelsPerDay returns the zoom level's fixed density.
func (z Zoom) PixelsPerDay() float64 {
	switch z {
	case ZoomDay:
		return 24
	case ZoomWeek:
		return 12
	case ZoomMonth:
		return 4
	case ZoomQuarter:
		return 2
	case ZoomYear:
		return 0.5
	default:
		return 12
	}
}

// String returns the zoom level's name.
func (z Zoom) String() string {
	switch z {
	case ZoomDay:
		return "day"
	case ZoomWeek:
		return "week"
	case ZoomMonth:
		return "month"
	case ZoomQuarter:
		return "quarter"
	case ZoomYear:
		return "year"
	default:
		return "week"
	}
}

// ParseZoom resolves a zoom level name. Unknown names fall back to week.
func ParseZoom(s string) Zoom {
	switch s {
	case "day":
		return ZoomDay
	case "week":
		return ZoomWeek
	case "month":
		return ZoomMonth
	case "quarter":
		return ZoomQuarter
	case "year":
		return ZoomYear
	default:
		return ZoomWeek
	}
}

// extentPaddingDays widens the mapped window beyond the data extent so
// bars never touch the viewport edges.
const extentPaddingDays = 7

// Mapper linearly maps dates to horizontal pixels for one zoom level.
type Mapper struct {
	min  time.Time
	max  time.Time
	zoom Zoom
}

// NewMapper builds a mapper over the date extent of the given tasks,
// padded by a week on each side. A task list with no dated tasks maps a
// two-week window around today.
func NewMapper(tasks []plan.Task, zoom Zoom, today time.Time) *Mapper {
	var min, max time.Time
	seen := false
	observe := func(d *time.Time) {
		if d == nil {
			return
		}
		day := plan.DateOf(*d)
		if !seen {
			min, max = day, day
			seen = true
			return
		}
		if day.Before(min) {
			min = day
		}
		if day.After(max) {
			max = day
		}
	}
	for _, t := range tasks {
		observe(t.Start)
		observe(t.Due)
	}
	if !seen {
		min, max = plan.DateOf(today), plan.DateOf(today)
	}

	return &Mapper{
		min:  plan.AddDays(min, -extentPaddingDays),
		max:  plan.AddDays(max, extentPaddingDays),
		zoom: zoom,
	}
}

// Zoom returns the mapper's zoom level.
func (m *Mapper) Zoom() Zoom {
	return m.zoom
}

// MinDate returns the left edge of the mapped window.
func (m *Mapper) MinDate() time.Time {
	return m.min
}

// MaxDate returns the right edge of the mapped window.
func (m *Mapper) MaxDate() time.Time {
	return m.max
}

// Width returns the pixel width of the mapped window.
func (m *Mapper) Width() float64 {
	return float64(plan.DaysBetween(m.min, m.max)+1) * m.zoom.PixelsPerDay()
}

// X maps a date to its horizontal pixel coordinate (the left edge of the
// date's day column).
func (m *Mapper) X(d time.Time) float64 {
	return float64(plan.DaysBetween(m.min, plan.DateOf(d))) * m.zoom.PixelsPerDay()
}

// DateAt is the inverse of X: the calendar day containing a pixel
// coordinate. Coordinates left of the window clamp to the window start.
func (m *Mapper) DateAt(x float64) time.Time {
	days := int(x / m.zoom.PixelsPerDay())
	if x < 0 {
		days = 0
	}
	return plan.AddDays(m.min, days)
}

// BarSpan returns the pixel range a task's bar covers. The right edge is
// computed against the day after the due date so the bar visually covers
// the full due date rather than its midnight instant. Tasks with a single
// date render as a 1-day bar; tasks with no dates report ok == false.
func (m *Mapper) BarSpan(t plan.Task) (x0, x1 float64, ok bool) {
	start := t.EffectiveStart()
	due := t.EffectiveDue()
	if start == nil || due == nil {
		return 0, 0, false
	}
	return m.X(*start), m.X(plan.AddDays(plan.DateOf(*due), 1)), true
}
