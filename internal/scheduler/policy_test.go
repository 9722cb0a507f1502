package scheduler

import (
	"math"
	"testing"
	"time"

	"github.com/curatorhq/curator/pkg/types"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestComputeNextReview_FailureResets(t *testing.T) {
	for _, quality := range []int{0, 1, 2} {
		out := ComputeNextReview(quality, 7, 2.1, 42, testNow)
		if out.Repetitions != 0 {
			t.Errorf("quality %d: repetitions = %d, want 0", quality, out.Repetitions)
		}
		if out.Interval != 1 {
			t.Errorf("quality %d: interval = %d, want 1", quality, out.Interval)
		}
	}
}

func TestComputeNextReview_SuccessIncrementsRepetitions(t *testing.T) {
	for _, quality := range []int{3, 4, 5} {
		out := ComputeNextReview(quality, 4, 2.0, 12, testNow)
		if out.Repetitions != 5 {
			t.Errorf("quality %d: repetitions = %d, want 5", quality, out.Repetitions)
		}
	}
}

func TestComputeNextReview_IntervalProgression(t *testing.T) {
	tests := []struct {
		name         string
		repetitions  int
		interval     int
		wantInterval int
	}{
		{"first success", 0, 0, 1},
		{"second success", 1, 1, 6},
		{"third success grows by ease", 2, 6, 12}, // round(6 * 2.0)
	}
	for _, tt := range tests {
		out := ComputeNextReview(4, tt.repetitions, 2.0, tt.interval, testNow)
		if out.Interval != tt.wantInterval {
			t.Errorf("%s: interval = %d, want %d", tt.name, out.Interval, tt.wantInterval)
		}
	}
}

func TestComputeNextReview_EaseClamped(t *testing.T) {
	// Repeated blackouts must never push ease below the floor.
	ease := 2.5
	for i := 0; i < 20; i++ {
		out := ComputeNextReview(0, 0, ease, 1, testNow)
		ease = out.EaseFactor
		if ease < types.MinEaseFactor || ease > types.MaxEaseFactor {
			t.Fatalf("iteration %d: ease %f out of [%f, %f]", i, ease, types.MinEaseFactor, types.MaxEaseFactor)
		}
	}
	if ease != types.MinEaseFactor {
		t.Errorf("ease after repeated failures = %f, want floor %f", ease, types.MinEaseFactor)
	}

	// Repeated perfect recalls must never push ease above the ceiling.
	ease = 2.5
	for i := 0; i < 20; i++ {
		out := ComputeNextReview(5, i, ease, 1, testNow)
		ease = out.EaseFactor
		if ease > types.MaxEaseFactor {
			t.Fatalf("iteration %d: ease %f above ceiling", i, ease)
		}
	}
}

func TestComputeNextReview_EaseAdjustedOnFailure(t *testing.T) {
	// A failed recall still nudges ease down.
	out := ComputeNextReview(2, 3, 2.5, 10, testNow)
	if out.EaseFactor >= 2.5 {
		t.Errorf("ease after quality 2 = %f, want < 2.5", out.EaseFactor)
	}
	want := 2.5 + (0.1 - 3*(0.08+3*0.02))
	if math.Abs(out.EaseFactor-want) > 1e-9 {
		t.Errorf("ease after quality 2 = %f, want %f", out.EaseFactor, want)
	}
}

func TestComputeNextReview_NextReviewDate(t *testing.T) {
	out := ComputeNextReview(4, 1, 2.5, 1, testNow)
	want := testNow.AddDate(0, 0, out.Interval)
	if !out.NextReview.Equal(want) {
		t.Errorf("next review = %v, want %v", out.NextReview, want)
	}
}

// TestComputeNextReview_Scenario walks the canonical three-success sequence
// followed by a failure.
func TestComputeNextReview_Scenario(t *testing.T) {
	// First review, quality 4: delta is zero, ease stays at the ceiling.
	out := ComputeNextReview(4, 0, 2.5, 0, testNow)
	if out.EaseFactor != 2.5 || out.Interval != 1 || out.Repetitions != 1 {
		t.Fatalf("step 1: got (%f, %d, %d), want (2.5, 1, 1)", out.EaseFactor, out.Interval, out.Repetitions)
	}
	if !out.NextReview.Equal(testNow.AddDate(0, 0, 1)) {
		t.Fatalf("step 1: next review %v, want tomorrow", out.NextReview)
	}

	// Second review, quality 4.
	out = ComputeNextReview(4, out.Repetitions, out.EaseFactor, out.Interval, testNow)
	if out.Interval != 6 || out.Repetitions != 2 {
		t.Fatalf("step 2: got interval %d reps %d, want 6 and 2", out.Interval, out.Repetitions)
	}

	// Third review, quality 5: interval grows by ease, still >= 6.
	out = ComputeNextReview(5, out.Repetitions, out.EaseFactor, out.Interval, testNow)
	if out.Repetitions != 3 {
		t.Fatalf("step 3: reps %d, want 3", out.Repetitions)
	}
	if out.Interval != 15 { // round(6 * 2.5)
		t.Fatalf("step 3: interval %d, want 15", out.Interval)
	}

	// Failure at repetitions > 0 resets the streak.
	out = ComputeNextReview(2, out.Repetitions, out.EaseFactor, out.Interval, testNow)
	if out.Repetitions != 0 || out.Interval != 1 {
		t.Fatalf("failure: got (%d, %d), want (0, 1)", out.Repetitions, out.Interval)
	}
}
