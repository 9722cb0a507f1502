package types

import (
	"encoding/json"
	"time"
)

// HistoryCap is the maximum number of review records retained per item.
// Appending beyond the cap evicts the oldest record first (FIFO).
const HistoryCap = 100

// ReviewRecord is a single review event. Records are immutable once appended.
type ReviewRecord struct {
	Date       time.Time `json:"date"`
	Quality    int       `json:"quality"` // 0-5
	Interval   int       `json:"interval"`
	EaseFactor float64   `json:"ease_factor"`

	// TimeSpent is the review duration in seconds, nil when not recorded.
	TimeSpent *int `json:"time_spent,omitempty"`
}

// ReviewHistory is an append-only, bounded sequence of review records.
// The 100-entry cap is an invariant of the type: Append evicts the oldest
// record once the cap is reached, so Len never exceeds HistoryCap.
type ReviewHistory struct {
	records []ReviewRecord
}

// Append adds a record, evicting the oldest when the history is full.
func (h *ReviewHistory) Append(r ReviewRecord) {
	if len(h.records) >= HistoryCap {
		// Shift rather than reslice so the backing array does not grow
		// unboundedly across the life of a long-reviewed item.
		copy(h.records, h.records[1:])
		h.records[len(h.records)-1] = r
		return
	}
	h.records = append(h.records, r)
}

// Len returns the number of retained records.
func (h *ReviewHistory) Len() int {
	return len(h.records)
}

// Records returns a copy of the retained records, oldest first.
func (h *ReviewHistory) Records() []ReviewRecord {
	out := make([]ReviewRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Clear removes all retained records.
func (h *ReviewHistory) Clear() {
	h.records = nil
}

// AverageQuality returns the arithmetic mean of the retained qualities,
// 0.0 when the history is empty.
func (h *ReviewHistory) AverageQuality() float64 {
	if len(h.records) == 0 {
		return 0.0
	}
	sum := 0
	for _, r := range h.records {
		sum += r.Quality
	}
	return float64(sum) / float64(len(h.records))
}

// SuccessRate returns the fraction of retained reviews with quality >= 3,
// 0.0 when the history is empty.
func (h *ReviewHistory) SuccessRate() float64 {
	if len(h.records) == 0 {
		return 0.0
	}
	ok := 0
	for _, r := range h.records {
		if r.Quality >= 3 {
			ok++
		}
	}
	return float64(ok) / float64(len(h.records))
}

// CurrentStreak returns the number of consecutive successful reviews counting
// back from the newest record, broken by the first quality < 3.
func (h *ReviewHistory) CurrentStreak() int {
	streak := 0
	for i := len(h.records) - 1; i >= 0; i-- {
		if h.records[i].Quality < 3 {
			break
		}
		streak++
	}
	return streak
}

// MarshalJSON implements json.Marshaler, encoding the history as a plain
// array of records.
func (h ReviewHistory) MarshalJSON() ([]byte, error) {
	if h.records == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(h.records)
}

// UnmarshalJSON implements json.Unmarshaler. Input longer than HistoryCap is
// trimmed to the most recent records so the cap invariant holds even for
// externally produced data.
func (h *ReviewHistory) UnmarshalJSON(data []byte) error {
	var records []ReviewRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	if len(records) > HistoryCap {
		records = records[len(records)-HistoryCap:]
	}
	h.records = records
	return nil
}
