package undo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// MutationGateway is the remote system's write surface. The gateway may
// apply side effects beyond the requested field (creating a precedes
// relation can shift the target's dates), so callers must re-render from
// a refreshed snapshot after every successful call rather than assuming
// the requested change was the only change.
type MutationGateway interface {
	UpdateDates(ctx context.Context, taskID int, start, due *time.Time) error
	CreateRelation(ctx context.Context, sourceID, targetID int, rt plan.RelationType) (int, error)
	DeleteRelation(ctx context.Context, relationID int) error
}

// ActionKind tags a recorded edit.
type ActionKind int

const (
	ActionDateChange ActionKind = iota
	ActionRelationChange
)

// RelationOp distinguishes the two relation edits.
type RelationOp int

const (
	OpCreate RelationOp = iota
	OpDelete
)

// Action is one accepted edit, recorded with enough state to replay it
// in either direction.
//
// A logical relation can be referenced by several recorded actions at
// once: a create on one stack and a delete on the other. When a replay
// re-creates the relation under a fresh server ID, every action still
// holding the defunct ID is rewritten so both stacks keep targeting the
// current relation.
type Action struct {
	Kind  ActionKind
	Token string

	// Date change.
	TaskID             int
	OldStart, OldDue   *time.Time
	NewStart, NewDue   *time.Time

	// Relation change.
	Op         RelationOp
	RelationID int
	SourceID   int
	TargetID   int
	Type       plan.RelationType
}

// Log is the linear undo/redo history. All mutations flow through Apply*
// so that only gateway-accepted edits are recorded.
//
// Not safe for concurrent use: the engine serializes edits, and no two
// mutations are ever in flight at once.
type Log struct {
	gw   MutationGateway
	undo []*Action
	redo []*Action
}

// NewLog creates an empty history over the given gateway.
func NewLog(gw MutationGateway) *Log {
	return &Log{gw: gw}
}

// CanUndo reports whether an action is available to undo.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether an action is available to redo.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (l *Log) Depth() (undo, redo int) {
	return len(l.undo), len(l.redo)
}

// record pushes an accepted action and discards the redo stack: the
// history is linear, never branching.
func (l *Log) record(a *Action) {
	l.undo = append(l.undo, a)
	l.redo = nil
}

// ApplyDateChange issues a date update through the gateway and records
// it on success. The old dates must be the task's current dates from the
// snapshot; they are what undo restores.
func (l *Log) ApplyDateChange(ctx context.Context, token string, taskID int, oldStart, oldDue, newStart, newDue *time.Time) error {
	if err := l.gw.UpdateDates(ctx, taskID, newStart, newDue); err != nil {
		return &EditError{Code: ErrCodeMutationRejected, Op: "update dates", Token: token, Cause: err}
	}
	l.record(&Action{
		Kind:     ActionDateChange,
		Token:    token,
		TaskID:   taskID,
		OldStart: oldStart,
		OldDue:   oldDue,
		NewStart: newStart,
		NewDue:   newDue,
	})
	slog.Info("date change committed", "token", token, "task", taskID)
	return nil
}

// ApplyRelationCreate issues a relation create and records it, returning
// the server-assigned relation ID.
func (l *Log) ApplyRelationCreate(ctx context.Context, token string, sourceID, targetID int, rt plan.RelationType) (int, error) {
	id, err := l.gw.CreateRelation(ctx, sourceID, targetID, rt)
	if err != nil {
		return 0, &EditError{Code: ErrCodeMutationRejected, Op: "create relation", Token: token, Cause: err}
	}
	l.record(&Action{
		Kind:       ActionRelationChange,
		Token:      token,
		Op:         OpCreate,
		RelationID: id,
		SourceID:   sourceID,
		TargetID:   targetID,
		Type:       rt,
	})
	slog.Info("relation created", "token", token, "relation", id, "source", sourceID, "target", targetID, "type", rt)
	return id, nil
}

// ApplyRelationDelete issues a relation delete and records it. The
// relation's endpoints and type must accompany the ID so undo can
// re-create it.
func (l *Log) ApplyRelationDelete(ctx context.Context, token string, rel plan.Relation) error {
	if err := l.gw.DeleteRelation(ctx, rel.ID); err != nil {
		return &EditError{Code: ErrCodeMutationRejected, Op: "delete relation", Token: token, Cause: err}
	}
	l.record(&Action{
		Kind:       ActionRelationChange,
		Token:      token,
		Op:         OpDelete,
		RelationID: rel.ID,
		SourceID:   rel.Source,
		TargetID:   rel.Target,
		Type:       rel.Type,
	})
	slog.Info("relation deleted", "token", token, "relation", rel.ID)
	return nil
}

// ErrNothingToUndo is returned by Undo on an empty history.
var ErrNothingToUndo = errors.New("nothing to undo")

// ErrNothingToRedo is returned by Redo on an empty redo stack.
var ErrNothingToRedo = errors.New("nothing to redo")

// Undo pops the most recent action and issues its inverse mutation. On
// failure both stacks are left exactly as they were and the error is
// returned for reporting; the engine stays consistent for the next
// interaction.
func (l *Log) Undo(ctx context.Context) error {
	if len(l.undo) == 0 {
		return ErrNothingToUndo
	}
	a := l.undo[len(l.undo)-1]

	if err := l.compensate(ctx, a, true); err != nil {
		return err
	}

	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, a)
	slog.Info("undo applied", "token", a.Token)
	return nil
}

// Redo pops the most recent undone action and reapplies its original
// mutation, with the same all-or-nothing stack discipline as Undo.
func (l *Log) Redo(ctx context.Context) error {
	if len(l.redo) == 0 {
		return ErrNothingToRedo
	}
	a := l.redo[len(l.redo)-1]

	if err := l.compensate(ctx, a, false); err != nil {
		return err
	}

	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, a)
	slog.Info("redo applied", "token", a.Token)
	return nil
}

// compensate issues the mutation that moves an action backward (undo)
// or forward (redo). When the move re-creates a relation, the fresh
// server ID is written into the action so the opposite direction targets
// the current relation, not a stale ID.
func (l *Log) compensate(ctx context.Context, a *Action, inverse bool) error {
	fail := func(op string, err error) error {
		return &EditError{Code: ErrCodeReconciliationFailed, Op: op, Cause: err}
	}

	switch a.Kind {
	case ActionDateChange:
		start, due := a.NewStart, a.NewDue
		if inverse {
			start, due = a.OldStart, a.OldDue
		}
		if err := l.gw.UpdateDates(ctx, a.TaskID, start, due); err != nil {
			return fail("update dates", err)
		}
		return nil

	case ActionRelationChange:
		// Undo of a create and redo of a delete both delete; the other
		// two directions re-create.
		deletes := (a.Op == OpCreate) == inverse
		if deletes {
			if err := l.gw.DeleteRelation(ctx, a.RelationID); err != nil {
				return fail("delete relation", err)
			}
			return nil
		}
		id, err := l.gw.CreateRelation(ctx, a.SourceID, a.TargetID, a.Type)
		if err != nil {
			return fail("create relation", err)
		}
		if id != a.RelationID {
			slog.Debug("relation id reconciled", "old", a.RelationID, "new", id)
			l.reconcileRelationID(a, id)
		}
		return nil

	default:
		return fail("compensate", errors.New("unknown action kind"))
	}
}

// reconcileRelationID rewrites every recorded action that still points
// at the relation a refers to, on both stacks, to the fresh server ID.
// Without the sweep, a create on one stack and its delete on the other
// drift apart after a replayed re-creation and the next undo or redo
// targets a relation that no longer exists.
func (l *Log) reconcileRelationID(a *Action, newID int) {
	oldID := a.RelationID
	for _, stack := range [2][]*Action{l.undo, l.redo} {
		for _, other := range stack {
			if other.Kind == ActionRelationChange && other.RelationID == oldID &&
				other.SourceID == a.SourceID && other.TargetID == a.TargetID && other.Type == a.Type {
				other.RelationID = newID
			}
		}
	}
	a.RelationID = newID
}
