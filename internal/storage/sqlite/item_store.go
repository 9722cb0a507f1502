// Package sqlite provides a SQLite implementation of the storage interfaces.
// The driver is modernc.org/sqlite, which is CGO-free.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/curatorhq/curator/internal/storage"
	"github.com/curatorhq/curator/pkg/types"
)

// ItemStore implements storage.ItemStore using SQLite.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore opens a SQLite database at the given DSN, configures WAL
// mode, and applies the schema.
func NewItemStore(dsn string) (*ItemStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors under concurrent load;
	// WAL mode lets readers proceed without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL mode: %w", err)
	}

	// Wait instead of failing immediately when the connection is held by
	// another goroutine.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &ItemStore{db: db}, nil
}

// Store creates or updates an item (upsert semantics).
func (s *ItemStore) Store(ctx context.Context, item *types.Item) error {
	if item == nil {
		return storage.ErrInvalidInput
	}
	if item.ID == "" {
		return fmt.Errorf("%w: item ID is required", storage.ErrInvalidInput)
	}
	if item.Title == "" {
		return fmt.Errorf("%w: item title is required", storage.ErrInvalidInput)
	}
	if !types.IsValidKind(item.Kind) {
		return fmt.Errorf("%w: unknown item kind %q", storage.ErrInvalidInput, item.Kind)
	}
	if item.Kind == "" {
		item.Kind = types.KindNote
	}

	tagsJSON, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal tags: %w", err)
	}
	if item.Tags == nil {
		tagsJSON = []byte("[]")
	}
	historyJSON, err := json.Marshal(item.Scheduling.History)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal review history: %w", err)
	}

	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO items (
			id, title, content, kind, tags,
			sr_enabled, ease_factor, interval_days, repetitions,
			last_review, next_review, total_reviews, average_quality, review_history,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			kind = excluded.kind,
			tags = excluded.tags,
			sr_enabled = excluded.sr_enabled,
			ease_factor = excluded.ease_factor,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			last_review = excluded.last_review,
			next_review = excluded.next_review,
			total_reviews = excluded.total_reviews,
			average_quality = excluded.average_quality,
			review_history = excluded.review_history,
			updated_at = excluded.updated_at
	`,
		item.ID, item.Title, item.Content, item.Kind, string(tagsJSON),
		boolToInt(item.Scheduling.Enabled), item.Scheduling.EaseFactor,
		item.Scheduling.Interval, item.Scheduling.Repetitions,
		nullableTime(item.Scheduling.LastReview), nullableTime(item.Scheduling.NextReview),
		item.Scheduling.TotalReviews, item.Scheduling.AverageQuality, string(historyJSON),
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to store item: %w", err)
	}
	return nil
}

// itemColumns is the column list shared by Get and List queries.
const itemColumns = `
	id, title, content, kind, tags,
	sr_enabled, ease_factor, interval_days, repetitions,
	last_review, next_review, total_reviews, average_quality, review_history,
	created_at, updated_at
`

// Get retrieves an item by ID. Returns storage.ErrNotFound when absent.
func (s *ItemStore) Get(ctx context.Context, id string) (*types.Item, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: item ID is required", storage.ErrInvalidInput)
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get item: %w", err)
	}
	return item, nil
}

// List retrieves items with pagination and filtering.
func (s *ItemStore) List(ctx context.Context, opts storage.ListOptions) (*storage.PaginatedResult[types.Item], error) {
	opts.Normalize()

	where := "1=1"
	var args []any
	if opts.Kind != "" {
		where += " AND kind = ?"
		args = append(args, opts.Kind)
	}
	if opts.Tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		where += ` AND tags LIKE '%' || ? || '%'`
		args = append(args, fmt.Sprintf("%q", opts.Tag))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items WHERE "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("sqlite: failed to count items: %w", err)
	}

	order := opts.SortBy
	if order == "next_review" {
		order = "interval_days" // keep NULL next_review items stable
	}
	query := fmt.Sprintf(
		`SELECT %s FROM items WHERE %s ORDER BY %s %s LIMIT ? OFFSET ?`,
		itemColumns, where, order, opts.SortOrder,
	)
	args = append(args, opts.Limit, (opts.Page-1)*opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list items: %w", err)
	}
	defer rows.Close()

	var items []types.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: row iteration failed: %w", err)
	}

	return &storage.PaginatedResult[types.Item]{
		Items:    items,
		Total:    total,
		Page:     opts.Page,
		PageSize: opts.Limit,
		HasMore:  opts.Page*opts.Limit < total,
	}, nil
}

// ListDue returns items due for review at the given time, never-reviewed
// items first, then oldest next_review first.
func (s *ItemStore) ListDue(ctx context.Context, now time.Time, limit int) ([]*types.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE sr_enabled = 1 AND (next_review IS NULL OR next_review <= ?)
		ORDER BY next_review IS NOT NULL, next_review ASC`
	args := []any{now.UTC()}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list due items: %w", err)
	}
	defer rows.Close()

	var items []*types.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan due item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: row iteration failed: %w", err)
	}
	return items, nil
}

// UpdateScheduling overwrites all scheduling columns for the item in one
// statement. Returns storage.ErrNotFound when the item does not exist.
func (s *ItemStore) UpdateScheduling(ctx context.Context, id string, st types.SchedulingState) error {
	if id == "" {
		return fmt.Errorf("%w: item ID is required", storage.ErrInvalidInput)
	}

	historyJSON, err := json.Marshal(st.History)
	if err != nil {
		return fmt.Errorf("sqlite: failed to marshal review history: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE items SET
			sr_enabled = ?,
			ease_factor = ?,
			interval_days = ?,
			repetitions = ?,
			last_review = ?,
			next_review = ?,
			total_reviews = ?,
			average_quality = ?,
			review_history = ?,
			updated_at = ?
		WHERE id = ?
	`,
		boolToInt(st.Enabled), st.EaseFactor, st.Interval, st.Repetitions,
		nullableTime(st.LastReview), nullableTime(st.NextReview),
		st.TotalReviews, st.AverageQuality, string(historyJSON),
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: failed to update scheduling: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes an item by ID. Returns storage.ErrNotFound when absent.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: item ID is required", storage.ErrInvalidInput)
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to get rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Count returns the total number of items.
func (s *ItemStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count); err != nil {
		return 0, fmt.Errorf("sqlite: failed to count items: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (s *ItemStore) Close() error {
	return s.db.Close()
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

// scanItem reads one item row, decoding JSON columns and nullable times.
func scanItem(row scanner) (*types.Item, error) {
	var (
		item                   types.Item
		tagsJSON, historyJSON  string
		enabled                int
		lastReview, nextReview sql.NullTime
	)

	err := row.Scan(
		&item.ID, &item.Title, &item.Content, &item.Kind, &tagsJSON,
		&enabled, &item.Scheduling.EaseFactor, &item.Scheduling.Interval,
		&item.Scheduling.Repetitions, &lastReview, &nextReview,
		&item.Scheduling.TotalReviews, &item.Scheduling.AverageQuality, &historyJSON,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Scheduling.Enabled = enabled != 0
	item.Scheduling.LastReview = timePtr(lastReview)
	item.Scheduling.NextReview = timePtr(nextReview)

	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tags: %w", err)
		}
	}
	if historyJSON != "" {
		if err := json.Unmarshal([]byte(historyJSON), &item.Scheduling.History); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review history: %w", err)
		}
	}

	return &item, nil
}

// nullableTime converts a time pointer to sql.NullTime.
func nullableTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// timePtr converts a sql.NullTime back to a time pointer.
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
