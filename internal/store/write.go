package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// Seed inserts tasks and their relations into an empty store. Relation
// IDs in the input are ignored; the autoincrement sequence assigns them.
func (s *Store) Seed(ctx context.Context, tasks []plan.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tasks {
		var parent any
		if t.ParentID != nil {
			parent = *t.ParentID
		}
		var estimate any
		if t.EstimatedHours != nil {
			estimate = *t.EstimatedHours
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tasks
			(id, title, start_date, due_date, estimated_hours, spent_hours,
			 done_ratio, project_id, project_name, parent_id, closed, closed_on)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, t.ID, t.Title, formatDate(t.Start), formatDate(t.Due), estimate,
			t.SpentHours, t.DoneRatio, t.ProjectID, t.ProjectName,
			parent, t.Closed, formatDate(t.ClosedOn))
		if err != nil {
			return fmt.Errorf("seed task %d: %w", t.ID, err)
		}
	}
	for _, t := range tasks {
		for _, r := range t.Relations {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO relations (type, source_id, target_id)
				VALUES (?, ?, ?)
			`, string(r.Type), r.Source, r.Target)
			if err != nil {
				return fmt.Errorf("seed relation %s %d->%d: %w", r.Type, r.Source, r.Target, err)
			}
		}
	}
	return tx.Commit()
}

// UpdateDates sets a task's start and due dates. A nil date clears the
// column.
func (s *Store) UpdateDates(ctx context.Context, taskID int, start, due *time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET start_date = ?, due_date = ? WHERE id = ?
	`, formatDate(start), formatDate(due), taskID)
	if err != nil {
		return fmt.Errorf("update dates for task %d: %w", taskID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %d not found", taskID)
	}
	return nil
}

// CreateRelation validates and inserts a relation, returning the
// assigned ID. Creating a precedes relation additionally reschedules the
// target to start after the source's due date, the same side effect the
// remote system applies; callers must refresh their snapshot rather than
// assume the relation was the only change.
func (s *Store) CreateRelation(ctx context.Context, sourceID, targetID int, rt plan.RelationType) (int, error) {
	if sourceID == targetID {
		return 0, errors.New("an issue cannot be related to itself")
	}
	related, err := s.hierarchyLinked(ctx, sourceID, targetID)
	if err != nil {
		return 0, err
	}
	if related {
		return 0, errors.New("target is a subtask of source")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin create relation: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO relations (type, source_id, target_id) VALUES (?, ?, ?)
	`, string(rt), sourceID, targetID)
	if err != nil {
		return 0, fmt.Errorf("create relation: %w", err)
	}
	id64, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("relation id: %w", err)
	}

	if rt == plan.RelationPrecedes {
		if err := rescheduleFollower(ctx, tx, sourceID, targetID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit create relation: %w", err)
	}
	return int(id64), nil
}

// DeleteRelation removes a relation by ID.
func (s *Store) DeleteRelation(ctx context.Context, relationID int) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM relations WHERE id = ?`, relationID)
	if err != nil {
		return fmt.Errorf("delete relation %d: %w", relationID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("relation %d not found", relationID)
	}
	return nil
}

// hierarchyLinked reports whether one task is in the other's subtask
// subtree; such pairs cannot be related.
func (s *Store) hierarchyLinked(ctx context.Context, a, b int) (bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, parent_id FROM tasks WHERE parent_id IS NOT NULL
	`)
	if err != nil {
		return false, fmt.Errorf("query hierarchy: %w", err)
	}
	defer rows.Close()

	parent := make(map[int]int)
	for rows.Next() {
		var id, p int
		if err := rows.Scan(&id, &p); err != nil {
			return false, fmt.Errorf("scan hierarchy: %w", err)
		}
		parent[id] = p
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("iterate hierarchy: %w", err)
	}

	ancestorOf := func(node, candidate int) bool {
		for cur, ok := parent[node]; ok; cur, ok = parent[cur] {
			if cur == candidate {
				return true
			}
		}
		return false
	}
	return ancestorOf(a, b) || ancestorOf(b, a), nil
}

// rescheduleFollower shifts the target task so it starts the day after
// the source's due date, preserving the target's duration. No-op when
// either side lacks the dates needed to compute the shift or the target
// already starts late enough.
func rescheduleFollower(ctx context.Context, tx *sql.Tx, sourceID, targetID int) error {
	var srcDue, tgtStart, tgtDue sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT due_date FROM tasks WHERE id = ?`, sourceID).Scan(&srcDue)
	if err != nil {
		return fmt.Errorf("read source %d: %w", sourceID, err)
	}
	err = tx.QueryRowContext(ctx,
		`SELECT start_date, due_date FROM tasks WHERE id = ?`, targetID).Scan(&tgtStart, &tgtDue)
	if err != nil {
		return fmt.Errorf("read target %d: %w", targetID, err)
	}

	due, err := parseDate(srcDue)
	if err != nil {
		return fmt.Errorf("source %d due: %w", sourceID, err)
	}
	start, err := parseDate(tgtStart)
	if err != nil {
		return fmt.Errorf("target %d start: %w", targetID, err)
	}
	if due == nil || start == nil {
		return nil
	}

	newStart := plan.AddDays(plan.DateOf(*due), 1)
	if !start.Before(newStart) {
		return nil
	}
	delta := plan.DaysBetween(*start, newStart)

	var newDue *time.Time
	if end, err := parseDate(tgtDue); err != nil {
		return fmt.Errorf("target %d due: %w", targetID, err)
	} else if end != nil {
		shifted := plan.AddDays(plan.DateOf(*end), delta)
		newDue = &shifted
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET start_date = ?, due_date = ? WHERE id = ?
	`, formatDate(&newStart), formatDate(newDue), targetID)
	if err != nil {
		return fmt.Errorf("reschedule target %d: %w", targetID, err)
	}

	slog.Info("precedes relation rescheduled follower",
		"source", sourceID,
		"target", targetID,
		"shift_days", delta,
	)
	return nil
}
