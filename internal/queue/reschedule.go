package queue

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/curatorhq/curator/internal/storage"
)

// reschedulePageSize is the number of items fetched per page during a bulk
// reschedule pass.
const reschedulePageSize = 100

// Rescheduler repairs scheduling state across the whole store: any enabled,
// previously reviewed item whose next_review is missing or disagrees with
// last_review + interval gets its next_review recomputed.
//
// Writes are throttled with a rate limiter so a large repair pass does not
// monopolise the single SQLite writer connection.
type Rescheduler struct {
	store   storage.ItemStore
	limiter *rate.Limiter
	now     func() time.Time
}

// NewRescheduler returns a Rescheduler writing at most writesPerSec updates
// per second (with the given burst). writesPerSec <= 0 disables throttling.
func NewRescheduler(store storage.ItemStore, writesPerSec float64, burst int) *Rescheduler {
	limit := rate.Inf
	if writesPerSec > 0 {
		limit = rate.Limit(writesPerSec)
		if burst < 1 {
			burst = 1
		}
	}
	return &Rescheduler{
		store:   store,
		limiter: rate.NewLimiter(limit, burst),
		now:     time.Now,
	}
}

// Run walks all items and repairs inconsistent next_review values. It
// returns the number of items updated. The pass stops early when ctx is
// cancelled.
func (r *Rescheduler) Run(ctx context.Context) (int, error) {
	repaired := 0
	page := 1

	for {
		result, err := r.store.List(ctx, storage.ListOptions{
			Page:      page,
			Limit:     reschedulePageSize,
			SortBy:    "created_at",
			SortOrder: "asc",
		})
		if err != nil {
			return repaired, fmt.Errorf("queue: reschedule list failed: %w", err)
		}

		for i := range result.Items {
			item := &result.Items[i]
			st := &item.Scheduling

			if !st.Enabled || st.LastReview == nil {
				continue
			}

			expected := st.LastReview.AddDate(0, 0, st.Interval)
			if st.NextReview != nil && st.NextReview.Equal(expected) {
				continue
			}

			if err := r.limiter.Wait(ctx); err != nil {
				return repaired, err
			}

			st.NextReview = &expected
			if err := r.store.UpdateScheduling(ctx, item.ID, *st); err != nil {
				log.Printf("queue: failed to reschedule item %s: %v", item.ID, err)
				continue
			}
			repaired++
		}

		if !result.HasMore {
			break
		}
		page++
	}

	return repaired, nil
}
