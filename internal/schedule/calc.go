package schedule

import (
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// spanKey identifies a memoized result: the inclusive date range plus the
// schedule contents the result was computed under. Keying on the
// fingerprint means a stale entry can never be served after SetSchedule,
// even if Invalidate were skipped.
type spanKey struct {
	start, end  int64
	fingerprint string
}

// Calc answers working-time queries against a weekly schedule.
//
// Not safe for concurrent use: the engine runs single-threaded and all
// queries happen on the render path.
type Calc struct {
	ws          plan.WeeklySchedule
	fingerprint string

	days  map[spanKey]int
	hours map[spanKey]float64
}

// NewCalc creates a calculator for the given schedule.
func NewCalc(ws plan.WeeklySchedule) *Calc {
	c := &Calc{}
	c.SetSchedule(ws)
	return c
}

// Schedule returns the current weekly schedule.
func (c *Calc) Schedule() plan.WeeklySchedule {
	return c.ws
}

// SetSchedule replaces the schedule configuration and invalidates all
// memoized results.
func (c *Calc) SetSchedule(ws plan.WeeklySchedule) {
	c.ws = ws
	c.fingerprint = ws.Fingerprint()
	c.Invalidate()
}

// Invalidate drops all memoized results. Called automatically on
// SetSchedule; exposed for callers that mutate rendering state wholesale.
func (c *Calc) Invalidate() {
	c.days = make(map[spanKey]int)
	c.hours = make(map[spanKey]float64)
}

func (c *Calc) key(start, end time.Time) spanKey {
	return spanKey{start.Unix(), end.Unix(), c.fingerprint}
}

// WorkingDaysBetween returns the number of days with nonzero scheduled
// hours in the inclusive range start..end.
//
// When end precedes start the result is negative, encoding how overdue a
// date is: -(n-1) where n is the working-day count of the reversed range.
// The single-day case therefore satisfies WorkingDaysBetween(d, d) == 1
// for a working day and 0 for a non-working one.
func (c *Calc) WorkingDaysBetween(start, end time.Time) int {
	start, end = plan.DateOf(start), plan.DateOf(end)
	if end.Before(start) {
		return -(c.WorkingDaysBetween(end, start) - 1)
	}

	k := c.key(start, end)
	if n, ok := c.days[k]; ok {
		return n
	}

	span := plan.DaysBetween(start, end) + 1
	fullWeeks, rem := span/7, span%7
	n := fullWeeks * c.ws.WorkingDaysPerWeek()
	// Remainder days carry the same weekdays as the first rem days of the
	// range, since the full weeks offset by a multiple of 7.
	wd := start.Weekday()
	for i := 0; i < rem; i++ {
		if c.ws.Working((wd + time.Weekday(i)) % 7) {
			n++
		}
	}

	c.days[k] = n
	return n
}

// AvailableHoursBetween returns the total scheduled hours in the
// inclusive range start..end, or 0 when end precedes start.
func (c *Calc) AvailableHoursBetween(start, end time.Time) float64 {
	start, end = plan.DateOf(start), plan.DateOf(end)
	if end.Before(start) {
		return 0
	}

	k := c.key(start, end)
	if h, ok := c.hours[k]; ok {
		return h
	}

	span := plan.DaysBetween(start, end) + 1
	fullWeeks, rem := span/7, span%7
	h := float64(fullWeeks) * c.ws.HoursPerWeek()
	wd := start.Weekday()
	for i := 0; i < rem; i++ {
		h += c.ws.HoursOn((wd + time.Weekday(i)) % 7)
	}

	c.hours[k] = h
	return h
}
