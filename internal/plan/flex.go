package plan

// FlexibilityStatus classifies how tight a task's timeline is. Lower
// values are more urgent, so the enum order doubles as a sort key for
// priority ordering.
type FlexibilityStatus int

const (
	StatusOverbooked FlexibilityStatus = iota
	StatusAtRisk
	StatusOnTrack
	StatusCompleted
)

// String returns the display name for the status.
func (s FlexibilityStatus) String() string {
	switch s {
	case StatusOverbooked:
		return "overbooked"
	case StatusAtRisk:
		return "at-risk"
	case StatusOnTrack:
		return "on-track"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// FlexibilityScore is the derived risk classification for a task. It is
// recomputed on every render pass from the current task and schedule and
// never persisted.
type FlexibilityScore struct {
	// Initial measures planning quality: whether the original start..due
	// window had slack (positive) or was already tight or impossible
	// (negative). Percentage rounded to the nearest integer.
	Initial int

	// Remaining measures current risk: slack between today..due capacity
	// and the remaining estimated work. Percentage rounded to the
	// nearest integer.
	Remaining int

	Status FlexibilityStatus

	// DaysRemaining is the signed working-day count from today to the
	// due date; negative when past due.
	DaysRemaining int

	HoursRemaining float64
}
