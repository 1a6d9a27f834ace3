package harness

import (
	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Scenario is one declarative end-to-end case loaded from YAML.
type Scenario struct {
	Name  string `yaml:"name"`
	Today string `yaml:"today"` // YYYY-MM-DD
	Zoom  string `yaml:"zoom"`  // empty means week

	// Schedule lists working hours Monday through Sunday. Empty means
	// the default 8h Monday-Friday week.
	Schedule []float64 `yaml:"schedule"`

	Tasks []plan.Task `yaml:"tasks"`
	Steps []Step      `yaml:"steps"`

	Expect Expect `yaml:"expect"`
}

// Step is one edit applied during the scenario, in order.
type Step struct {
	// Op is one of: date_change, relation_create, relation_delete,
	// undo, redo.
	Op string `yaml:"op"`

	// date_change fields. Empty date strings clear the field.
	TaskID int    `yaml:"task_id"`
	Start  string `yaml:"start"`
	Due    string `yaml:"due"`

	// relation_create fields.
	SourceID int    `yaml:"source_id"`
	TargetID int    `yaml:"target_id"`
	Type     string `yaml:"type"`

	// relation_delete field.
	RelationID int `yaml:"relation_id"`

	// WantError, when set, means the step must fail with an error
	// containing this substring. The scenario continues afterwards.
	WantError string `yaml:"want_error"`
}

// Expect states assertions about the final rendered scene.
type Expect struct {
	// Statuses maps task IDs to flexibility status names
	// ("overbooked", "at-risk", "on-track", "completed"), or "none" for
	// tasks that must not classify.
	Statuses map[int]string `yaml:"statuses"`

	Bars      *int `yaml:"bars"`
	Arrows    *int `yaml:"arrows"`
	Relations *int `yaml:"relations"`
}

// Event records one executed step for golden comparison.
type Event struct {
	Seq     int    `json:"seq"`
	Op      string `json:"op"`
	Token   string `json:"token,omitempty"`
	Outcome string `json:"outcome"`
}
