// Package storage provides composable storage interfaces for the Curator
// system.
//
// The storage layer is designed with small, focused interfaces that can be
// implemented independently and composed as needed. Backends persist items
// and their scheduling state; the scheduler core itself performs no I/O and
// relies on the store as its durability boundary.
package storage

import (
	"context"
	"time"

	"github.com/curatorhq/curator/pkg/types"
)

// ItemStore provides CRUD operations, pagination, and due-list queries for
// learning items.
type ItemStore interface {
	// Store creates or updates an item (upsert semantics).
	// If an item with the same ID exists, it is updated; otherwise a new
	// one is created.
	Store(ctx context.Context, item *types.Item) error

	// Get retrieves an item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	Get(ctx context.Context, id string) (*types.Item, error)

	// List retrieves items with pagination and filtering.
	List(ctx context.Context, opts ListOptions) (*PaginatedResult[types.Item], error)

	// ListDue returns items that are due for review at the given time:
	// scheduling enabled and next_review absent or <= now. Items are
	// ordered oldest next_review first, with never-reviewed items leading.
	// limit <= 0 means no limit.
	ListDue(ctx context.Context, now time.Time, limit int) ([]*types.Item, error)

	// UpdateScheduling overwrites the item's scheduling state in a single
	// statement. This is the commit point for a recorded review: all
	// scheduling fields and the history land together or not at all.
	// Returns ErrNotFound if the item doesn't exist.
	UpdateScheduling(ctx context.Context, id string, st types.SchedulingState) error

	// Delete removes an item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	Delete(ctx context.Context, id string) error

	// Count returns the total number of items.
	Count(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
