package harness

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vrognas/redmyne-sub005/internal/engine"
	"github.com/vrognas/redmyne-sub005/internal/gesture"
	"github.com/vrognas/redmyne-sub005/internal/layout"
	"github.com/vrognas/redmyne-sub005/internal/plan"
	"github.com/vrognas/redmyne-sub005/internal/store"
	"github.com/vrognas/redmyne-sub005/internal/undo"
)

var validOps = map[string]bool{
	"date_change":     true,
	"relation_create": true,
	"relation_delete": true,
	"undo":            true,
	"redo":            true,
}

// Load reads and validates a scenario from a YAML file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s: missing name", path)
	}
	if _, err := parseDate(sc.Today); err != nil {
		return nil, fmt.Errorf("scenario %s: bad today: %w", sc.Name, err)
	}
	if len(sc.Schedule) != 0 && len(sc.Schedule) != 7 {
		return nil, fmt.Errorf("scenario %s: schedule needs 7 entries, got %d", sc.Name, len(sc.Schedule))
	}
	if len(sc.Tasks) == 0 {
		return nil, fmt.Errorf("scenario %s: no tasks", sc.Name)
	}
	for i, st := range sc.Steps {
		if !validOps[st.Op] {
			return nil, fmt.Errorf("scenario %s: step %d: unknown op %q", sc.Name, i+1, st.Op)
		}
	}
	return &sc, nil
}

// Result is the outcome of running a scenario.
type Result struct {
	Events []Event
	Scene  *engine.Scene
	Engine *engine.Engine

	closeStore func() error
}

// Close releases the scenario's backing store.
func (r *Result) Close() error {
	if r.closeStore == nil {
		return nil
	}
	return r.closeStore()
}

// Run seeds the scenario into an in-memory store and applies every step
// through the engine. A step error is fatal unless the step declares
// want_error; an expected failure is recorded with its friendly message
// and execution continues.
func Run(sc *Scenario) (*Result, error) {
	ctx := context.Background()

	today, err := parseDate(sc.Today)
	if err != nil {
		return nil, err
	}
	ws := plan.DefaultSchedule
	if len(sc.Schedule) == 7 {
		ws = plan.NewWeeklySchedule(sc.Schedule[0], sc.Schedule[1], sc.Schedule[2],
			sc.Schedule[3], sc.Schedule[4], sc.Schedule[5], sc.Schedule[6])
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}
	if err := st.Seed(ctx, sc.Tasks); err != nil {
		st.Close()
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	eng := engine.New(st, st, ws,
		engine.WithToday(func() time.Time { return today }),
		engine.WithZoom(layout.ParseZoom(sc.Zoom)),
	)
	if err := eng.Refresh(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("scenario %s: %w", sc.Name, err)
	}

	res := &Result{Engine: eng, closeStore: st.Close}
	for i, step := range sc.Steps {
		token := fmt.Sprintf("step-%d", i+1)
		var stepErr error

		switch step.Op {
		case "date_change":
			start, err := parseOptDate(step.Start)
			if err != nil {
				st.Close()
				return nil, fmt.Errorf("scenario %s: step %d: %w", sc.Name, i+1, err)
			}
			due, err := parseOptDate(step.Due)
			if err != nil {
				st.Close()
				return nil, fmt.Errorf("scenario %s: step %d: %w", sc.Name, i+1, err)
			}
			stepErr = eng.ApplyIntent(ctx, gesture.Intent{
				Token: token, Kind: gesture.IntentDateChange,
				TaskID: step.TaskID, NewStart: start, NewDue: due,
			})
		case "relation_create":
			stepErr = eng.ApplyIntent(ctx, gesture.Intent{
				Token: token, Kind: gesture.IntentRelationCreate,
				SourceID: step.SourceID, TargetID: step.TargetID,
				Type: plan.RelationType(step.Type),
			})
		case "relation_delete":
			stepErr = eng.DeleteRelation(ctx, token, step.RelationID)
		case "undo":
			token = ""
			stepErr = eng.Undo(ctx)
		case "redo":
			token = ""
			stepErr = eng.Redo(ctx)
		}

		outcome := "ok"
		switch {
		case stepErr != nil && step.WantError == "":
			st.Close()
			return nil, fmt.Errorf("scenario %s: step %d (%s): %w", sc.Name, i+1, step.Op, stepErr)
		case stepErr != nil && !strings.Contains(stepErr.Error(), step.WantError):
			st.Close()
			return nil, fmt.Errorf("scenario %s: step %d (%s): got %v, want error containing %q",
				sc.Name, i+1, step.Op, stepErr, step.WantError)
		case stepErr != nil:
			outcome = "rejected: " + undo.FriendlyMessage(stepErr)
		case step.WantError != "":
			st.Close()
			return nil, fmt.Errorf("scenario %s: step %d (%s): succeeded, want error containing %q",
				sc.Name, i+1, step.Op, step.WantError)
		}

		res.Events = append(res.Events, Event{
			Seq: i + 1, Op: step.Op, Token: token, Outcome: outcome,
		})
	}

	res.Scene = eng.Render()
	return res, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: want YYYY-MM-DD", s)
	}
	return d, nil
}

func parseOptDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
