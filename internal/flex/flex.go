package flex

import (
	"math"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/schedule"
)

// atRiskThreshold is the slack percentage below which an open task is
// flagged at-risk.
const atRiskThreshold = 20

// percent expresses available capacity as slack over needed work:
// positive when there is spare time, negative when the window cannot fit
// the work. A non-positive need has nothing left to fit and reports full
// slack.
func percent(available, needed float64) float64 {
	if needed <= 0 {
		return 100
	}
	return (available/needed - 1) * 100
}

// Classify computes the flexibility score for a task.
//
// Returns nil when the task has no due date or no estimate: without both
// there is no timeline to measure against, and the caller renders a
// neutral no-data state.
//
// spentOverride, when non-nil, substitutes for the task's recorded spent
// hours. The interaction layer uses it to preview a classification while
// a time entry is being edited.
func Classify(t plan.Task, c *schedule.Calc, today time.Time, spentOverride *float64) *plan.FlexibilityScore {
	if t.Due == nil || t.EstimatedHours == nil {
		return nil
	}

	estimate := *t.EstimatedHours
	spent := t.SpentHours
	if spentOverride != nil {
		spent = *spentOverride
	}

	// Over budget but not done: the naive estimate-minus-spent would go
	// negative, so derive remaining work from the completion ratio instead.
	var hoursRemaining float64
	if spent > estimate && t.DoneRatio < 100 {
		hoursRemaining = estimate * (1 - float64(t.DoneRatio)/100)
	} else {
		hoursRemaining = math.Max(estimate-spent, 0)
	}

	today = plan.DateOf(today)
	due := plan.DateOf(*t.Due)
	start := plan.DateOf(*t.EffectiveStart())

	initial := percent(c.AvailableHoursBetween(start, due), estimate)

	remaining := 100.0
	if hoursRemaining > 0 {
		remaining = percent(c.AvailableHoursBetween(today, due), hoursRemaining)
	}

	var status plan.FlexibilityStatus
	switch {
	case t.DoneRatio >= 100:
		status = plan.StatusCompleted
	case remaining < 0:
		status = plan.StatusOverbooked
	case remaining > 0 && remaining < atRiskThreshold:
		status = plan.StatusAtRisk
	default:
		// Exactly zero slack means the plan fits the calendar to the
		// hour; that is on track, not at risk.
		status = plan.StatusOnTrack
	}

	return &plan.FlexibilityScore{
		Initial:        int(math.Round(initial)),
		Remaining:      int(math.Round(remaining)),
		Status:         status,
		DaysRemaining:  c.WorkingDaysBetween(today, due),
		HoursRemaining: hoursRemaining,
	}
}

// Intensity returns the task's workload ratio for a single day: the
// estimate spread uniformly across the task's available hours. The value
// may exceed 1 for overloaded spans; display clamping is the scene
// renderer's concern, aggregation always uses the raw value.
//
// Days outside the task's range, non-working days, and tasks without
// dates or an estimate all yield 0.
func Intensity(t plan.Task, c *schedule.Calc, day time.Time) float64 {
	total, ok := totalAvailable(t, c)
	if !ok {
		return 0
	}

	day = plan.DateOf(day)
	if day.Before(plan.DateOf(*t.EffectiveStart())) || day.After(plan.DateOf(*t.EffectiveDue())) {
		return 0
	}
	if !c.Schedule().Working(day.Weekday()) {
		return 0
	}
	return *t.EstimatedHours / total
}

// Contribution returns the task's per-day utilization contribution for
// aggregation: estimate/totalAvailable for every working day in the
// task's range. The boolean is false when the task contributes nothing
// (missing data or no working days in range).
func Contribution(t plan.Task, c *schedule.Calc) (float64, bool) {
	total, ok := totalAvailable(t, c)
	if !ok {
		return 0, false
	}
	return *t.EstimatedHours / total, true
}

func totalAvailable(t plan.Task, c *schedule.Calc) (float64, bool) {
	if t.EstimatedHours == nil || t.EffectiveStart() == nil {
		return 0, false
	}
	total := c.AvailableHoursBetween(*t.EffectiveStart(), *t.EffectiveDue())
	if total <= 0 {
		return 0, false
	}
	return total, true
}
