package workload

import (
	"time"

	"github.com/vrognas/redmyne-sub005/internal/flex"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/schedule"
)

// Band classifies a day's utilization for heatmap coloring.
type Band int

const (
	BandLow      Band = iota // <= 0.8
	BandMedium               // <= 1.0
	BandHigh                 // <= 1.2
	BandCritical             // > 1.2
)

// String returns the display name for the band.
func (b Band) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	case BandHigh:
		return "high"
	case BandCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// BandOf buckets a utilization ratio.
func BandOf(utilization float64) Band {
	switch {
	case utilization <= 0.8:
		return BandLow
	case utilization <= 1.0:
		return BandMedium
	case utilization <= 1.2:
		return BandHigh
	default:
		return BandCritical
	}
}

// Aggregate sums per-day utilization across all tasks for every date in
// the inclusive window. Every date in the window is present in the
// result, zero-valued when nothing is scheduled.
//
// Summary tasks are skipped: their dates are display-only aggregates of
// their children, which contribute individually.
func Aggregate(tasks []plan.Task, c *schedule.Calc, windowStart, windowEnd time.Time) map[time.Time]float64 {
	windowStart = plan.DateOf(windowStart)
	windowEnd = plan.DateOf(windowEnd)

	util := make(map[time.Time]float64)
	for d := windowStart; !d.After(windowEnd); d = plan.AddDays(d, 1) {
		util[d] = 0
	}
	if windowEnd.Before(windowStart) {
		return util
	}

	summary := plan.SummaryIDs(tasks)
	for _, t := range tasks {
		if summary[t.ID] || t.EffectiveStart() == nil {
			continue
		}
		contribution, ok := flex.Contribution(t, c)
		if !ok {
			continue
		}

		from := plan.DateOf(*t.EffectiveStart())
		to := plan.DateOf(*t.EffectiveDue())
		if from.Before(windowStart) {
			from = windowStart
		}
		if to.After(windowEnd) {
			to = windowEnd
		}
		for d := from; !d.After(to); d = plan.AddDays(d, 1) {
			if c.Schedule().Working(d.Weekday()) {
				util[d] += contribution
			}
		}
	}
	return util
}
