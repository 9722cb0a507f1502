package types

// Urgency levels classify how overdue an item's review is. Computed fresh
// from next_review and the current time on every call, never persisted.
const (
	UrgencyNotDue      = "not_due"      // not due for review
	UrgencyNew         = "new"          // due, never reviewed
	UrgencyDueToday    = "due_today"    // due, 0 days overdue
	UrgencyOverdue     = "overdue"      // 1-3 days overdue
	UrgencyVeryOverdue = "very_overdue" // more than 3 days overdue
)

// Mastery levels classify an item's learning stage from its current interval.
const (
	MasteryNotStarted = "not_started" // interval 0
	MasteryLearning   = "learning"    // interval < 7
	MasteryYoung      = "young"       // interval < 21
	MasteryMature     = "mature"      // interval < 90
	MasteryMastered   = "mastered"    // interval >= 90
)

// ValidUrgencyLevels contains all urgency level values.
var ValidUrgencyLevels = []string{
	UrgencyNotDue,
	UrgencyNew,
	UrgencyDueToday,
	UrgencyOverdue,
	UrgencyVeryOverdue,
}

// ValidMasteryLevels contains all mastery level values.
var ValidMasteryLevels = []string{
	MasteryNotStarted,
	MasteryLearning,
	MasteryYoung,
	MasteryMature,
	MasteryMastered,
}
