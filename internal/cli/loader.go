package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// scheduleFile is the YAML shape of a weekly schedule:
//
//	hours:
//	  monday: 8
//	  tuesday: 8
//	  wednesday: 8
//	  thursday: 8
//	  friday: 6
//
// Omitted days are non-working.
type scheduleFile struct {
	Hours struct {
		Monday    float64 `yaml:"monday"`
		Tuesday   float64 `yaml:"tuesday"`
		Wednesday float64 `yaml:"wednesday"`
		Thursday  float64 `yaml:"thursday"`
		Friday    float64 `yaml:"friday"`
		Saturday  float64 `yaml:"saturday"`
		Sunday    float64 `yaml:"sunday"`
	} `yaml:"hours"`
}

// LoadSchedule reads a weekly schedule from a YAML file. An empty path
// returns the default schedule (8h Monday through Friday).
func LoadSchedule(path string) (plan.WeeklySchedule, error) {
	if path == "" {
		return plan.DefaultSchedule, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return plan.WeeklySchedule{}, fmt.Errorf("read schedule: %w", err)
	}
	var f scheduleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return plan.WeeklySchedule{}, fmt.Errorf("parse schedule: %w", err)
	}
	ws := plan.NewWeeklySchedule(
		f.Hours.Monday, f.Hours.Tuesday, f.Hours.Wednesday,
		f.Hours.Thursday, f.Hours.Friday, f.Hours.Saturday, f.Hours.Sunday,
	)
	if ws.HoursPerWeek() <= 0 {
		return plan.WeeklySchedule{}, fmt.Errorf("schedule %s has no working hours", path)
	}
	return ws, nil
}

// LoadPlan reads tasks from a YAML plan file, used to seed a database.
func LoadPlan(path string) ([]plan.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	var f struct {
		Tasks []plan.Task `yaml:"tasks"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	if len(f.Tasks) == 0 {
		return nil, fmt.Errorf("plan %s contains no tasks", path)
	}
	return f.Tasks, nil
}
