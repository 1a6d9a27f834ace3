package plan

import (
	"fmt"
	"time"
)

// WeeklySchedule is a recurring availability pattern: scheduled hours for
// each weekday. A zero-hour day is non-working. Indexed by time.Weekday
// (Sunday == 0), matching the standard library.
type WeeklySchedule [7]float64

// DefaultSchedule is the common 40-hour week: 8h Monday through Friday.
var DefaultSchedule = NewWeeklySchedule(8, 8, 8, 8, 8, 0, 0)

// NewWeeklySchedule builds a schedule from Monday-first hour values,
// which is how configuration files and humans write weeks.
func NewWeeklySchedule(mon, tue, wed, thu, fri, sat, sun float64) WeeklySchedule {
	return WeeklySchedule{
		time.Sunday:    sun,
		time.Monday:    mon,
		time.Tuesday:   tue,
		time.Wednesday: wed,
		time.Thursday:  thu,
		time.Friday:    fri,
		time.Saturday:  sat,
	}
}

// HoursOn returns the scheduled hours for a weekday.
func (ws WeeklySchedule) HoursOn(d time.Weekday) float64 {
	return ws[d]
}

// Working reports whether the weekday has nonzero scheduled hours.
func (ws WeeklySchedule) Working(d time.Weekday) bool {
	return ws[d] > 0
}

// HoursPerWeek returns the total scheduled hours across the week.
func (ws WeeklySchedule) HoursPerWeek() float64 {
	var total float64
	for _, h := range ws {
		total += h
	}
	return total
}

// WorkingDaysPerWeek returns the count of weekdays with nonzero hours.
func (ws WeeklySchedule) WorkingDaysPerWeek() int {
	n := 0
	for _, h := range ws {
		if h > 0 {
			n++
		}
	}
	return n
}

// Fingerprint returns a stable key for the schedule's contents, used to
// scope memoized working-time results to a specific configuration.
func (ws WeeklySchedule) Fingerprint() string {
	return fmt.Sprintf("%v", [7]float64(ws))
}
