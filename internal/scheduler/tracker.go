package scheduler

import (
	"fmt"
	"time"

	"github.com/curatorhq/curator/pkg/types"
)

// ReviewStats aggregates an item's review history.
type ReviewStats struct {
	// TotalReviews is the lifetime review count (not limited to the
	// retained history window).
	TotalReviews int `json:"total_reviews"`

	// AverageQuality is the mean quality over the retained history.
	AverageQuality float64 `json:"average_quality"`

	// SuccessRate is the fraction of retained reviews with quality >= 3.
	SuccessRate float64 `json:"success_rate"`

	// CurrentStreak counts consecutive successes from the newest review
	// backward, broken by the first quality < 3.
	CurrentStreak int `json:"current_streak"`
}

// Tracker applies the review policy and retention estimator to an item's
// SchedulingState. It holds no per-item state of its own; a single Tracker
// serves any number of items. The clock is injectable for tests.
type Tracker struct {
	now func() time.Time
}

// NewTracker returns a Tracker using the wall clock.
func NewTracker() *Tracker {
	return NewTrackerWithClock(time.Now)
}

// NewTrackerWithClock returns a Tracker using the given clock.
func NewTrackerWithClock(now func() time.Time) *Tracker {
	return &Tracker{now: now}
}

// RecordReview applies one review with the given quality (0-5) to st.
// timeSpent, when non-nil, is the review duration in seconds.
//
// Returns (nil, nil) without touching st when scheduling is disabled —
// callers must check for a nil outcome. Returns ErrInvalidQuality for a
// quality outside 0-5.
//
// The update is computed in full against a copy of st and committed as a
// single assignment, so a concurrent reader holding the host's lock
// discipline never observes a partially updated state.
func (t *Tracker) RecordReview(st *types.SchedulingState, quality int, timeSpent *int) (*ReviewOutcome, error) {
	if !st.Enabled {
		return nil, nil
	}
	if quality < 0 || quality > 5 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidQuality, quality)
	}

	now := t.now().UTC()
	outcome := ComputeNextReview(quality, st.Repetitions, st.EaseFactor, st.Interval, now)

	next := *st
	next.EaseFactor = outcome.EaseFactor
	next.Interval = outcome.Interval
	next.Repetitions = outcome.Repetitions
	next.LastReview = &now
	nextReview := outcome.NextReview
	next.NextReview = &nextReview
	next.TotalReviews++
	next.History.Append(types.ReviewRecord{
		Date:       now,
		Quality:    quality,
		Interval:   outcome.Interval,
		EaseFactor: outcome.EaseFactor,
		TimeSpent:  timeSpent,
	})
	next.AverageQuality = next.History.AverageQuality()

	*st = next
	return &outcome, nil
}

// IsDue reports whether the item is due for review: scheduling is enabled
// and either no review has ever been scheduled or the scheduled time has
// passed.
func (t *Tracker) IsDue(st *types.SchedulingState) bool {
	if !st.Enabled {
		return false
	}
	if st.NextReview == nil {
		return true
	}
	return !t.now().Before(*st.NextReview)
}

// UrgencyLevel classifies how overdue the item is. Computed fresh from
// next_review and the current time; never persisted.
func (t *Tracker) UrgencyLevel(st *types.SchedulingState) string {
	if !t.IsDue(st) {
		return types.UrgencyNotDue
	}
	if st.NextReview == nil {
		return types.UrgencyNew
	}
	switch days := t.OverdueDays(st); {
	case days <= 0:
		return types.UrgencyDueToday
	case days <= 3:
		return types.UrgencyOverdue
	default:
		return types.UrgencyVeryOverdue
	}
}

// OverdueDays returns the number of whole days the item is past its
// scheduled review, 0 when not overdue or never scheduled.
func (t *Tracker) OverdueDays(st *types.SchedulingState) int {
	if st.NextReview == nil {
		return 0
	}
	days := int(t.now().Sub(*st.NextReview).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// Retention returns the current estimated recall probability for the item.
// Items that have never been reviewed report 1.0 (nothing to forget yet).
func (t *Tracker) Retention(st *types.SchedulingState) float64 {
	if st.Repetitions <= 0 || st.LastReview == nil {
		return 1.0
	}
	elapsed := t.now().Sub(*st.LastReview).Hours() / 24.0
	return EstimateRetention(elapsed, st.Interval, st.EaseFactor, st.Repetitions)
}

// Stats aggregates the item's review history.
func (t *Tracker) Stats(st *types.SchedulingState) ReviewStats {
	return ReviewStats{
		TotalReviews:   st.TotalReviews,
		AverageQuality: st.History.AverageQuality(),
		SuccessRate:    st.History.SuccessRate(),
		CurrentStreak:  st.History.CurrentStreak(),
	}
}

// MasteryLevel classifies an item's learning stage from its current
// interval. Pure function, no clock.
func MasteryLevel(interval int) string {
	switch {
	case interval == 0:
		return types.MasteryNotStarted
	case interval < 7:
		return types.MasteryLearning
	case interval < 21:
		return types.MasteryYoung
	case interval < 90:
		return types.MasteryMature
	default:
		return types.MasteryMastered
	}
}

// Reset returns st to the documented defaults: ease factor 2.5, interval 0,
// repetitions 0, no review timestamps, empty history. Irreversible. The
// enabled flag is preserved.
func Reset(st *types.SchedulingState) {
	enabled := st.Enabled
	*st = types.NewSchedulingState()
	st.Enabled = enabled
}
