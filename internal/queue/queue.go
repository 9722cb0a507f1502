// Package queue builds the review queue: the ordered list of items due for
// review, most urgent first. It also provides the bulk rescheduler that
// repairs inconsistent scheduling state across the whole store.
package queue

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/curatorhq/curator/internal/scheduler"
	"github.com/curatorhq/curator/internal/storage"
	"github.com/curatorhq/curator/pkg/types"
)

// Entry is one item in the review queue with its derived review signals.
type Entry struct {
	Item        *types.Item `json:"item"`
	Urgency     string      `json:"urgency"`
	Mastery     string      `json:"mastery"`
	OverdueDays int         `json:"overdue_days"`
	Retention   float64     `json:"retention"`
}

// Builder assembles review queues from an item store.
type Builder struct {
	store   storage.ItemStore
	tracker *scheduler.Tracker
}

// NewBuilder returns a Builder over the given store.
func NewBuilder(store storage.ItemStore, tracker *scheduler.Tracker) *Builder {
	return &Builder{store: store, tracker: tracker}
}

// Build returns up to limit due items ordered most urgent first: higher
// urgency rank wins, then more overdue days, then lower estimated retention.
// limit <= 0 means no limit.
func (b *Builder) Build(ctx context.Context, now time.Time, limit int) ([]Entry, error) {
	// Load all due items and rank in memory; the store's due-list order
	// (oldest next_review first) is not the queue order.
	items, err := b.store.ListDue(ctx, now, 0)
	if err != nil {
		return nil, fmt.Errorf("queue: failed to load due items: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		st := &item.Scheduling
		entries = append(entries, Entry{
			Item:        item,
			Urgency:     b.tracker.UrgencyLevel(st),
			Mastery:     scheduler.MasteryLevel(st.Interval),
			OverdueDays: b.tracker.OverdueDays(st),
			Retention:   b.tracker.Retention(st),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := urgencyRank(entries[i].Urgency), urgencyRank(entries[j].Urgency)
		if ri != rj {
			return ri > rj
		}
		if entries[i].OverdueDays != entries[j].OverdueDays {
			return entries[i].OverdueDays > entries[j].OverdueDays
		}
		return entries[i].Retention < entries[j].Retention
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// urgencyRank orders urgency levels for queue sorting. New items come after
// everything already slipping, since there is nothing to forget yet.
func urgencyRank(urgency string) int {
	switch urgency {
	case types.UrgencyVeryOverdue:
		return 4
	case types.UrgencyOverdue:
		return 3
	case types.UrgencyDueToday:
		return 2
	case types.UrgencyNew:
		return 1
	default:
		return 0
	}
}
