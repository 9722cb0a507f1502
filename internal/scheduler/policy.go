// Package scheduler implements the spaced-repetition core: the SM-2 review
// policy, the retention estimator, and the review state tracker that applies
// them to an item's scheduling state.
package scheduler

import (
	"math"
	"time"

	"github.com/curatorhq/curator/pkg/types"
)

// ReviewOutcome is the scheduling result of a single review: the new ease
// factor, interval, repetition count, and next review time.
type ReviewOutcome struct {
	EaseFactor  float64   `json:"ease_factor"`
	Interval    int       `json:"interval"` // days
	Repetitions int       `json:"repetitions"`
	NextReview  time.Time `json:"next_review"`
}

// ComputeNextReview applies one SM-2 review step to the given scheduling
// values and returns the updated values. It is a pure function: no clock
// reads, no I/O, no mutation of its inputs.
//
// quality must already be in [0, 5]; range checking is the caller's contract
// (the Tracker validates before calling). Outputs satisfy the scheduling
// invariants: ease factor in [1.3, 2.5], interval >= 1, repetitions >= 0.
//
// A failed recall (quality < 3) resets the repetition streak and schedules
// the item for tomorrow. The ease factor is adjusted on every review, so a
// poor-but-not-total failure still nudges ease down.
func ComputeNextReview(quality, repetitions int, easeFactor float64, interval int, now time.Time) ReviewOutcome {
	if quality < 3 {
		repetitions = 0
		interval = 1
	} else {
		repetitions++
		switch {
		case repetitions == 1:
			interval = 1
		case repetitions == 2:
			interval = 6
		default:
			interval = int(math.Round(float64(interval) * easeFactor))
		}
	}

	q := float64(quality)
	easeFactor += 0.1 - (5-q)*(0.08+(5-q)*0.02)
	easeFactor = clampEase(easeFactor)

	return ReviewOutcome{
		EaseFactor:  easeFactor,
		Interval:    interval,
		Repetitions: repetitions,
		NextReview:  now.AddDate(0, 0, interval),
	}
}

// clampEase bounds an ease factor to [MinEaseFactor, MaxEaseFactor].
func clampEase(ef float64) float64 {
	if ef < types.MinEaseFactor {
		return types.MinEaseFactor
	}
	if ef > types.MaxEaseFactor {
		return types.MaxEaseFactor
	}
	return ef
}
