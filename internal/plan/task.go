package plan

import "time"

// Task represents a schedulable unit of work pulled from the issue source.
//
// Optional fields use pointers: a nil Start or Due means the date is unset,
// which is distinct from a zero time. EstimatedHours follows the same
// convention because "no estimate" must classify differently from "0h".
type Task struct {
	ID             int        `json:"id" yaml:"id"`
	Title          string     `json:"title" yaml:"title"`
	Start          *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	Due            *time.Time `json:"due,omitempty" yaml:"due,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty" yaml:"estimated_hours,omitempty"`
	SpentHours     float64    `json:"spent_hours" yaml:"spent_hours"`
	DoneRatio      int        `json:"done_ratio" yaml:"done_ratio"` // 0-100
	ProjectID      int        `json:"project_id" yaml:"project_id"`
	ProjectName    string     `json:"project_name" yaml:"project_name"`
	ParentID       *int       `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Relations      []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
	Closed         bool       `json:"closed" yaml:"closed"`
	ClosedOn       *time.Time `json:"closed_on,omitempty" yaml:"closed_on,omitempty"`
}

// HasDates reports whether the task carries both a start and a due date.
func (t Task) HasDates() bool {
	return t.Start != nil && t.Due != nil
}

// Done reports whether the task is terminal for capacity purposes.
func (t Task) Done() bool {
	return t.DoneRatio >= 100
}

// EffectiveStart returns the start date, falling back to the due date for
// tasks that only carry one of the two. Bars spanning a single date are
// treated as a 1-day range throughout the engine. Returns nil when the
// task has no dates at all.
func (t Task) EffectiveStart() *time.Time {
	if t.Start != nil {
		return t.Start
	}
	return t.Due
}

// EffectiveDue mirrors EffectiveStart for the due side.
func (t Task) EffectiveDue() *time.Time {
	if t.Due != nil {
		return t.Due
	}
	return t.Start
}

// ChildCounts returns the number of children per parent task ID, counting
// only parents present in the given list. Used to flag summary tasks.
func ChildCounts(tasks []Task) map[int]int {
	present := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		present[t.ID] = true
	}
	counts := make(map[int]int)
	for _, t := range tasks {
		if t.ParentID != nil && present[*t.ParentID] {
			counts[*t.ParentID]++
		}
	}
	return counts
}

// SummaryIDs returns the set of summary tasks: tasks with at least one
// child in the list. A summary task's own dates and effort are
// display-only aggregates and are excluded from intensity computation.
func SummaryIDs(tasks []Task) map[int]bool {
	summary := make(map[int]bool)
	for id, n := range ChildCounts(tasks) {
		if n > 0 {
			summary[id] = true
		}
	}
	return summary
}
