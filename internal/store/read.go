package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

const dateLayout = "2006-01-02"

// Snapshot returns all tasks with their outgoing relations attached,
// ordered by task ID for deterministic rendering.
func (s *Store) Snapshot(ctx context.Context) ([]plan.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, start_date, due_date, estimated_hours,
		       spent_hours, done_ratio, project_id, project_name,
		       parent_id, closed, closed_on
		FROM tasks
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []plan.Task
	index := make(map[int]int)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	rels, err := s.db.QueryContext(ctx, `
		SELECT id, type, source_id, target_id
		FROM relations
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query relations: %w", err)
	}
	defer rels.Close()

	for rels.Next() {
		var r plan.Relation
		var typ string
		if err := rels.Scan(&r.ID, &typ, &r.Source, &r.Target); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		r.Type = plan.RelationType(typ)
		if i, ok := index[r.Source]; ok {
			tasks[i].Relations = append(tasks[i].Relations, r)
		}
	}
	if err := rels.Err(); err != nil {
		return nil, fmt.Errorf("iterate relations: %w", err)
	}

	return tasks, nil
}

func scanTask(rows *sql.Rows) (plan.Task, error) {
	var (
		t                  plan.Task
		start, due, closed sql.NullString
		estimate           sql.NullFloat64
		parent             sql.NullInt64
	)
	err := rows.Scan(&t.ID, &t.Title, &start, &due, &estimate,
		&t.SpentHours, &t.DoneRatio, &t.ProjectID, &t.ProjectName,
		&parent, &t.Closed, &closed)
	if err != nil {
		return plan.Task{}, fmt.Errorf("scan task: %w", err)
	}

	t.Title = norm.NFC.String(t.Title)
	if t.Start, err = parseDate(start); err != nil {
		return plan.Task{}, fmt.Errorf("task %d start: %w", t.ID, err)
	}
	if t.Due, err = parseDate(due); err != nil {
		return plan.Task{}, fmt.Errorf("task %d due: %w", t.ID, err)
	}
	if t.ClosedOn, err = parseDate(closed); err != nil {
		return plan.Task{}, fmt.Errorf("task %d closed_on: %w", t.ID, err)
	}
	if estimate.Valid {
		t.EstimatedHours = &estimate.Float64
	}
	if parent.Valid {
		p := int(parent.Int64)
		t.ParentID = &p
	}
	return t, nil
}

func parseDate(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(dateLayout, ns.String, time.UTC)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func formatDate(d *time.Time) any {
	if d == nil {
		return nil
	}
	return plan.DateOf(*d).Format(dateLayout)
}
