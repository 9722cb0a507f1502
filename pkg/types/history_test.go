package types

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(quality int) ReviewRecord {
	return ReviewRecord{
		Date:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Quality:    quality,
		Interval:   1,
		EaseFactor: 2.5,
	}
}

func TestReviewHistory_AppendEvictsOldest(t *testing.T) {
	var h ReviewHistory
	for i := 0; i < HistoryCap+10; i++ {
		h.Append(record(i % 6))
	}

	assert.Equal(t, HistoryCap, h.Len())

	// The 10 oldest records were evicted; the oldest retained is append #10.
	records := h.Records()
	assert.Equal(t, 10%6, records[0].Quality)
	assert.Equal(t, (HistoryCap+9)%6, records[len(records)-1].Quality)
}

func TestReviewHistory_RecordsReturnsCopy(t *testing.T) {
	var h ReviewHistory
	h.Append(record(4))

	records := h.Records()
	records[0].Quality = 0

	assert.Equal(t, 4, h.Records()[0].Quality, "mutating the copy must not affect the history")
}

func TestReviewHistory_Aggregates(t *testing.T) {
	var h ReviewHistory
	for _, q := range []int{5, 4, 1, 3, 5} {
		h.Append(record(q))
	}

	assert.InDelta(t, (5+4+1+3+5)/5.0, h.AverageQuality(), 1e-9)
	assert.InDelta(t, 4.0/5.0, h.SuccessRate(), 1e-9)
	assert.Equal(t, 2, h.CurrentStreak())
}

func TestReviewHistory_AggregatesEmpty(t *testing.T) {
	var h ReviewHistory
	assert.Equal(t, 0.0, h.AverageQuality())
	assert.Equal(t, 0.0, h.SuccessRate())
	assert.Equal(t, 0, h.CurrentStreak())
}

func TestReviewHistory_StreakBrokenByFailure(t *testing.T) {
	var h ReviewHistory
	for _, q := range []int{4, 4, 4, 2} {
		h.Append(record(q))
	}
	assert.Equal(t, 0, h.CurrentStreak())
}

func TestReviewHistory_JSONRoundTrip(t *testing.T) {
	var h ReviewHistory
	spent := 30
	r := record(4)
	r.TimeSpent = &spent
	h.Append(r)
	h.Append(record(2))

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var decoded ReviewHistory
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, 2, decoded.Len())
	records := decoded.Records()
	assert.Equal(t, 4, records[0].Quality)
	require.NotNil(t, records[0].TimeSpent)
	assert.Equal(t, 30, *records[0].TimeSpent)
	assert.Equal(t, 2, records[1].Quality)
}

func TestReviewHistory_EmptyMarshalsAsArray(t *testing.T) {
	var h ReviewHistory
	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestReviewHistory_UnmarshalTrimsOversizedInput(t *testing.T) {
	// Externally produced JSON may exceed the cap; the newest records win.
	var parts []string
	for i := 0; i < HistoryCap+50; i++ {
		parts = append(parts, fmt.Sprintf(
			`{"date":"2026-03-10T12:00:00Z","quality":%d,"interval":1,"ease_factor":2.5}`, i%6))
	}
	data := "[" + joinComma(parts) + "]"

	var h ReviewHistory
	require.NoError(t, json.Unmarshal([]byte(data), &h))

	assert.Equal(t, HistoryCap, h.Len())
	assert.Equal(t, 50%6, h.Records()[0].Quality)
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
