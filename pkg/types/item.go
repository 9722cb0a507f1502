// Package types defines the core data model for the Curator system:
// learning items, their spaced-repetition scheduling state, and the bounded
// review history.
package types

import "time"

// Item kinds. A kind describes what sort of learning artifact an item is;
// all kinds share the same scheduling behavior.
const (
	KindNote     = "note"
	KindBookmark = "bookmark"
	KindGoal     = "goal"
	KindLog      = "log"
	KindCard     = "card"
)

// ValidKinds contains all valid item kind values.
var ValidKinds = []string{KindNote, KindBookmark, KindGoal, KindLog, KindCard}

// IsValidKind reports whether kind is a known item kind.
// Empty string is valid (defaults to note at the storage layer).
func IsValidKind(kind string) bool {
	if kind == "" {
		return true
	}
	for _, k := range ValidKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// Item is a single learning artifact tracked by the system: a research note,
// a bookmark, a learning goal, a project log entry, or a flashcard.
// Each item exclusively owns its SchedulingState.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content,omitempty"`
	Kind      string    `json:"kind"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Scheduling is the item's spaced-repetition state.
	Scheduling SchedulingState `json:"scheduling"`
}

// NewItem returns an Item with the given identity fields and default
// scheduling state (enabled, never reviewed).
func NewItem(id, title, content, kind string) *Item {
	now := time.Now().UTC()
	if kind == "" {
		kind = KindNote
	}
	return &Item{
		ID:         id,
		Title:      title,
		Content:    content,
		Kind:       kind,
		CreatedAt:  now,
		UpdatedAt:  now,
		Scheduling: NewSchedulingState(),
	}
}
