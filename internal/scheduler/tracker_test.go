package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curatorhq/curator/pkg/types"
)

func fixedTracker(now time.Time) *Tracker {
	return NewTrackerWithClock(func() time.Time { return now })
}

func TestTracker_RecordReview(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tracker := fixedTracker(now)
	st := types.NewSchedulingState()

	outcome, err := tracker.RecordReview(&st, 4, nil)
	require.NoError(t, err)
	require.NotNil(t, outcome)

	assert.Equal(t, 1, st.Repetitions)
	assert.Equal(t, 1, st.Interval)
	assert.Equal(t, 2.5, st.EaseFactor)
	assert.Equal(t, 1, st.TotalReviews)
	require.NotNil(t, st.LastReview)
	assert.True(t, st.LastReview.Equal(now))
	require.NotNil(t, st.NextReview)
	assert.True(t, st.NextReview.Equal(now.AddDate(0, 0, 1)))
	assert.Equal(t, 1, st.History.Len())
	assert.Equal(t, 4.0, st.AverageQuality)
}

func TestTracker_RecordReview_Disabled(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()
	st.Enabled = false

	outcome, err := tracker.RecordReview(&st, 4, nil)
	require.NoError(t, err)
	assert.Nil(t, outcome)
	assert.Equal(t, 0, st.TotalReviews, "disabled state must not change")
}

func TestTracker_RecordReview_InvalidQuality(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()

	for _, q := range []int{-1, 6, 100} {
		outcome, err := tracker.RecordReview(&st, q, nil)
		assert.Nil(t, outcome)
		assert.True(t, errors.Is(err, ErrInvalidQuality), "quality %d", q)
	}
	assert.Equal(t, 0, st.TotalReviews, "invalid input must not change state")
}

func TestTracker_RecordReview_TimeSpent(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()
	spent := 42

	_, err := tracker.RecordReview(&st, 5, &spent)
	require.NoError(t, err)

	records := st.History.Records()
	require.Len(t, records, 1)
	require.NotNil(t, records[0].TimeSpent)
	assert.Equal(t, 42, *records[0].TimeSpent)
}

func TestTracker_HistoryCapFIFO(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()

	for i := 0; i < types.HistoryCap+5; i++ {
		_, err := tracker.RecordReview(&st, 3+i%3, nil)
		require.NoError(t, err)
	}

	assert.Equal(t, types.HistoryCap, st.History.Len())
	assert.Equal(t, types.HistoryCap+5, st.TotalReviews, "lifetime count keeps growing past the cap")

	// The oldest retained record is the 6th review ever made.
	records := st.History.Records()
	assert.Equal(t, 3+5%3, records[0].Quality)
}

func TestTracker_AverageQualityIsMeanOfHistory(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()

	for _, q := range []int{5, 3, 1, 4} {
		_, err := tracker.RecordReview(&st, q, nil)
		require.NoError(t, err)
	}
	assert.InDelta(t, (5+3+1+4)/4.0, st.AverageQuality, 1e-9)
}

func TestTracker_IsDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tracker := fixedTracker(now)

	// Fresh item: due immediately.
	st := types.NewSchedulingState()
	assert.True(t, tracker.IsDue(&st))

	// Disabled: never due.
	st.Enabled = false
	assert.False(t, tracker.IsDue(&st))
	st.Enabled = true

	// Scheduled in the future: not due.
	future := now.Add(24 * time.Hour)
	st.NextReview = &future
	assert.False(t, tracker.IsDue(&st))

	// Scheduled exactly now: due.
	st.NextReview = &now
	assert.True(t, tracker.IsDue(&st))

	// Past due.
	past := now.Add(-time.Hour)
	st.NextReview = &past
	assert.True(t, tracker.IsDue(&st))
}

func TestTracker_UrgencyLevel(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tracker := fixedTracker(now)

	tests := []struct {
		name       string
		nextReview *time.Time
		enabled    bool
		want       string
	}{
		{"disabled", nil, false, types.UrgencyNotDue},
		{"never reviewed", nil, true, types.UrgencyNew},
		{"future", timeInPtr(now, 48*time.Hour), true, types.UrgencyNotDue},
		{"due this moment", &now, true, types.UrgencyDueToday},
		{"hours overdue", timeInPtr(now, -6*time.Hour), true, types.UrgencyDueToday},
		{"two days overdue", timeInPtr(now, -2*24*time.Hour), true, types.UrgencyOverdue},
		{"three days overdue", timeInPtr(now, -3*24*time.Hour), true, types.UrgencyOverdue},
		{"four days overdue", timeInPtr(now, -4*24*time.Hour), true, types.UrgencyVeryOverdue},
	}
	for _, tt := range tests {
		st := types.NewSchedulingState()
		st.Enabled = tt.enabled
		st.NextReview = tt.nextReview
		assert.Equal(t, tt.want, tracker.UrgencyLevel(&st), tt.name)
	}
}

func TestMasteryLevel(t *testing.T) {
	tests := []struct {
		interval int
		want     string
	}{
		{0, types.MasteryNotStarted},
		{3, types.MasteryLearning},
		{10, types.MasteryYoung},
		{50, types.MasteryMature},
		{100, types.MasteryMastered},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MasteryLevel(tt.interval), "interval %d", tt.interval)
	}
}

func TestTracker_Stats(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()

	// success, success, failure, success, success -> streak of 2
	for _, q := range []int{4, 5, 2, 3, 4} {
		_, err := tracker.RecordReview(&st, q, nil)
		require.NoError(t, err)
	}

	stats := tracker.Stats(&st)
	assert.Equal(t, 5, stats.TotalReviews)
	assert.InDelta(t, (4+5+2+3+4)/5.0, stats.AverageQuality, 1e-9)
	assert.InDelta(t, 4.0/5.0, stats.SuccessRate, 1e-9)
	assert.Equal(t, 2, stats.CurrentStreak)
}

func TestReset(t *testing.T) {
	tracker := NewTracker()
	st := types.NewSchedulingState()

	for _, q := range []int{4, 4, 5} {
		_, err := tracker.RecordReview(&st, q, nil)
		require.NoError(t, err)
	}
	require.NotZero(t, st.TotalReviews)

	Reset(&st)

	assert.True(t, st.Enabled)
	assert.Equal(t, types.DefaultEaseFactor, st.EaseFactor)
	assert.Equal(t, 0, st.Interval)
	assert.Equal(t, 0, st.Repetitions)
	assert.Nil(t, st.LastReview)
	assert.Nil(t, st.NextReview)
	assert.Equal(t, 0, st.TotalReviews)
	assert.Equal(t, 0.0, st.AverageQuality)
	assert.Equal(t, 0, st.History.Len())
}

func TestReset_PreservesDisabledFlag(t *testing.T) {
	st := types.NewSchedulingState()
	st.Enabled = false
	Reset(&st)
	assert.False(t, st.Enabled)
}

func TestTracker_Retention(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tracker := fixedTracker(now)

	// Never reviewed: full retention.
	st := types.NewSchedulingState()
	assert.Equal(t, 1.0, tracker.Retention(&st))

	// Reviewed 10 days ago at a 10-day interval and default ease.
	last := now.AddDate(0, 0, -10)
	st.Repetitions = 1
	st.Interval = 10
	st.LastReview = &last
	assert.InDelta(t, 0.9, tracker.Retention(&st), 1e-9)
}

func timeInPtr(base time.Time, d time.Duration) *time.Time {
	t := base.Add(d)
	return &t
}
