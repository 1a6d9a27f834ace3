// Package undo maintains the reversible edit history for timeline edits.
//
// Edits reach the remote system through the MutationGateway; only edits
// the gateway accepts enter the history. Undo issues the inverse
// mutation (restore old dates, delete a created relation, re-create a
// deleted one) and redo mirrors it. The history is linear: any new edit
// clears the redo stack.
//
// Re-creating a relation is not identity-preserving: the remote system
// assigns a fresh relation ID. The log moves the same action value
// between the two stacks, so the action's relation ID acts as the shared
// mutable cell both directions read; rewriting it once after a re-create
// keeps subsequent undo and redo pointed at the current ID.
//
// A failed compensating mutation leaves both stacks exactly as they
// were: the action is only moved after its mutation succeeds, and the
// failure surfaces as a reported, non-fatal error.
package undo
