// Package services wires the storage layer and the scheduler core into the
// operations the CLI (or any other host surface) calls.
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/curatorhq/curator/internal/importer"
	"github.com/curatorhq/curator/internal/queue"
	"github.com/curatorhq/curator/internal/scheduler"
	"github.com/curatorhq/curator/internal/storage"
	"github.com/curatorhq/curator/pkg/types"
)

// ReviewService orchestrates the item store, the review state tracker, and
// the review queue. It is the boundary where user input (review quality) is
// validated; scheduler.ErrInvalidQuality surfaces from here.
type ReviewService struct {
	store   storage.ItemStore
	tracker *scheduler.Tracker
	builder *queue.Builder
	now     func() time.Time
}

// NewReviewService returns a ReviewService over the given store using the
// wall clock.
func NewReviewService(store storage.ItemStore) *ReviewService {
	return NewReviewServiceWithClock(store, time.Now)
}

// NewReviewServiceWithClock returns a ReviewService with an injectable clock
// for tests.
func NewReviewServiceWithClock(store storage.ItemStore, now func() time.Time) *ReviewService {
	tracker := scheduler.NewTrackerWithClock(now)
	return &ReviewService{
		store:   store,
		tracker: tracker,
		builder: queue.NewBuilder(store, tracker),
		now:     now,
	}
}

// CreateItem creates and persists a new item with default scheduling state.
func (s *ReviewService) CreateItem(ctx context.Context, title, content, kind string, tags []string) (*types.Item, error) {
	item := types.NewItem(uuid.NewString(), title, content, kind)
	item.Tags = tags
	if err := s.store.Store(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns the item with the given ID.
func (s *ReviewService) Get(ctx context.Context, id string) (*types.Item, error) {
	return s.store.Get(ctx, id)
}

// List returns a page of items.
func (s *ReviewService) List(ctx context.Context, opts storage.ListOptions) (*storage.PaginatedResult[types.Item], error) {
	return s.store.List(ctx, opts)
}

// RecordReview applies one review with the given quality (0-5) to the item
// and persists the updated scheduling state. timeSpent, when non-nil, is the
// review duration in seconds.
//
// Returns (nil, nil) when the item has scheduling disabled. Returns
// scheduler.ErrInvalidQuality for a quality outside 0-5 before any state is
// touched.
func (s *ReviewService) RecordReview(ctx context.Context, id string, quality int, timeSpent *int) (*scheduler.ReviewOutcome, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := s.tracker.RecordReview(&item.Scheduling, quality, timeSpent)
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		// Scheduling disabled; nothing to persist.
		return nil, nil
	}

	if err := s.store.UpdateScheduling(ctx, id, item.Scheduling); err != nil {
		return nil, fmt.Errorf("failed to persist review: %w", err)
	}
	return outcome, nil
}

// DueList builds the review queue: due items ordered most urgent first,
// truncated to limit (0 = unlimited).
func (s *ReviewService) DueList(ctx context.Context, limit int) ([]queue.Entry, error) {
	return s.builder.Build(ctx, s.now(), limit)
}

// Stats returns aggregate review statistics for the item.
func (s *ReviewService) Stats(ctx context.Context, id string) (*scheduler.ReviewStats, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	stats := s.tracker.Stats(&item.Scheduling)
	return &stats, nil
}

// Retention returns the item's current estimated recall probability.
func (s *ReviewService) Retention(ctx context.Context, id string) (float64, error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.tracker.Retention(&item.Scheduling), nil
}

// Reset returns the item's scheduling state to the defaults and persists it.
// Irreversible.
func (s *ReviewService) Reset(ctx context.Context, id string) error {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	scheduler.Reset(&item.Scheduling)
	return s.store.UpdateScheduling(ctx, id, item.Scheduling)
}

// Import walks a directory of Markdown files and stores each parsed item.
// Returns the number of items imported.
func (s *ReviewService) Import(ctx context.Context, dir string) (int, error) {
	items, err := importer.ImportDirectory(dir)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, item := range items {
		if err := s.store.Store(ctx, item); err != nil {
			log.Printf("services: failed to store imported item %q: %v", item.Title, err)
			continue
		}
		imported++
	}
	return imported, nil
}

// BulkReschedule repairs inconsistent next_review values across the store,
// throttled to writesPerSec (0 = unthrottled). Returns the number of items
// repaired.
func (s *ReviewService) BulkReschedule(ctx context.Context, writesPerSec float64, burst int) (int, error) {
	return queue.NewRescheduler(s.store, writesPerSec, burst).Run(ctx)
}
