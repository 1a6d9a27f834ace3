package gesture

import (
	"time"

	"github.com/vrognas/redmyne-sub005/internal/plan"
)

// IntentKind tags the edit an intent requests.
type IntentKind int

const (
	IntentDateChange IntentKind = iota
	IntentRelationCreate
)

// Intent is an edit request emitted by a completed gesture. The engine
// resolves it against the current snapshot and routes it through the
// mutation gateway; the controller itself never mutates anything.
type Intent struct {
	// Token correlates the intent through logs and the undo history.
	Token string

	Kind IntentKind

	// Date change fields.
	TaskID   int
	NewStart *time.Time
	NewDue   *time.Time

	// Relation create fields.
	SourceID int
	TargetID int
	Type     plan.RelationType
}
