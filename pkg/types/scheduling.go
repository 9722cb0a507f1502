package types

import "time"

// Spaced-repetition scheduling bounds. EaseFactor is always kept inside
// [MinEaseFactor, MaxEaseFactor]; new items start at DefaultEaseFactor.
const (
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
	DefaultEaseFactor = 2.5
)

// SchedulingState is the spaced-repetition state for a single item.
// Each Item exclusively owns one SchedulingState; it is created with
// defaults when the item is created and mutated only through the
// scheduler's RecordReview and Reset operations.
type SchedulingState struct {
	// Enabled controls whether the item participates in scheduling at all.
	Enabled bool `json:"sr_enabled"`

	// EaseFactor is the per-item difficulty multiplier in [1.3, 2.5].
	// Lower means harder (shorter interval growth).
	EaseFactor float64 `json:"ease_factor"`

	// Interval is the number of days until the next review. 0 means the
	// item has never been scheduled.
	Interval int `json:"interval"`

	// Repetitions counts consecutive successful reviews (quality >= 3).
	Repetitions int `json:"repetitions"`

	// LastReview is the time of the most recent review, nil if never reviewed.
	LastReview *time.Time `json:"last_review,omitempty"`

	// NextReview is the scheduled time of the next review, nil if never scheduled.
	NextReview *time.Time `json:"next_review,omitempty"`

	// TotalReviews is the lifetime review count. It never decreases except
	// through Reset.
	TotalReviews int `json:"total_reviews"`

	// AverageQuality is the arithmetic mean of the qualities currently held
	// in History. Recomputed from the full retained history after every
	// append rather than accumulated incrementally.
	AverageQuality float64 `json:"average_quality"`

	// History holds the most recent review records, oldest first.
	History ReviewHistory `json:"review_history"`
}

// NewSchedulingState returns the default state for a freshly created item:
// scheduling enabled, ease factor 2.5, no interval, no reviews.
func NewSchedulingState() SchedulingState {
	return SchedulingState{
		Enabled:    true,
		EaseFactor: DefaultEaseFactor,
	}
}
