package undo

import (
	"errors"
	"fmt"
	"strings"
)

// EditErrorCode categorizes edit failures.
type EditErrorCode string

const (
	// ErrCodeMutationRejected indicates the gateway refused the edit
	// itself; nothing entered the history.
	ErrCodeMutationRejected EditErrorCode = "MUTATION_REJECTED"

	// ErrCodeReconciliationFailed indicates a compensating mutation
	// during undo/redo failed; both stacks were left untouched.
	ErrCodeReconciliationFailed EditErrorCode = "RECONCILIATION_FAILED"
)

// EditError reports a failed edit or compensation, including the gateway
// error verbatim.
type EditError struct {
	Code  EditErrorCode
	Op    string // "update dates", "create relation", "delete relation"
	Token string // intent token, empty for undo/redo compensations
	Cause error
}

// Error implements the error interface.
func (e *EditError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("%s: %s (token=%s): %v", e.Code, e.Op, e.Token, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Cause)
}

// Unwrap exposes the gateway error for errors.Is/As chains.
func (e *EditError) Unwrap() error {
	return e.Cause
}

// IsMutationRejected reports whether err is a gateway rejection.
func IsMutationRejected(err error) bool {
	var ee *EditError
	return errors.As(err, &ee) && ee.Code == ErrCodeMutationRejected
}

// IsReconciliationFailure reports whether err is a failed undo/redo
// compensation.
func IsReconciliationFailure(err error) bool {
	var ee *EditError
	return errors.As(err, &ee) && ee.Code == ErrCodeReconciliationFailed
}

// FriendlyMessage maps known gateway validation failures to friendlier
// strings; anything unrecognized passes through verbatim.
func FriendlyMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "subtask"):
		return "This issue cannot be linked to one of its subtasks."
	case strings.Contains(msg, "circular"):
		return "This link would create a circular dependency."
	default:
		return msg
	}
}
