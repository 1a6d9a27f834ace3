package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Verify checks the scenario's expectations against the final result.
func Verify(t *testing.T, sc *Scenario, res *Result) {
	t.Helper()

	for id, want := range sc.Expect.Statuses {
		task, ok := findTask(res.Engine.Tasks(), id)
		require.True(t, ok, "expected task %d in final snapshot", id)

		score := res.Engine.Classify(task)
		if want == "none" {
			assert.Nil(t, score, "task %d should not classify", id)
			continue
		}
		require.NotNil(t, score, "task %d should classify", id)
		assert.Equal(t, want, score.Status.String(), "task %d status", id)
	}

	if sc.Expect.Bars != nil {
		assert.Len(t, res.Scene.Bars, *sc.Expect.Bars, "bar count")
	}
	if sc.Expect.Arrows != nil {
		assert.Len(t, res.Scene.Arrows, *sc.Expect.Arrows, "arrow count")
	}
	if sc.Expect.Relations != nil {
		assert.Equal(t, *sc.Expect.Relations, len(snapshotRelations(res)), "relation count")
	}
}

func findTask(tasks []plan.Task, id int) (plan.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return plan.Task{}, false
}

func snapshotRelations(res *Result) []plan.Relation {
	rels := make([]plan.Relation, 0)
	for _, t := range res.Engine.Tasks() {
		rels = append(rels, t.Relations...)
	}
	return rels
}
