package scheduler

import (
	"math"

	"github.com/curatorhq/curator/pkg/types"
)

// expectedRetention is the recall probability the SM-2 interval is tuned to
// hit: an item reviewed exactly on schedule should sit at roughly 0.9.
const expectedRetention = 0.9

// EstimateRetention returns the estimated probability of successful recall
// given the days elapsed since the last review and the item's current
// scheduling values. The result is always in [0, 1].
//
// The curve is exponential in elapsed/interval, anchored so that an item at
// default ease reviewed exactly at its interval sits at expectedRetention:
//
//	retention = 0.9 ^ ((elapsed/interval) * (2.5/ease) / (1 + log2(reps)))
//
// A lower ease factor (harder item) steepens the decay; more repetitions
// flatten it (a more durable memory). With repetitions == 0 there is nothing
// to forget yet, so retention is 1.0.
func EstimateRetention(daysElapsed float64, interval int, easeFactor float64, repetitions int) float64 {
	if repetitions <= 0 {
		return 1.0
	}
	if daysElapsed <= 0 {
		return 1.0
	}
	if interval < 1 {
		interval = 1
	}
	if easeFactor < types.MinEaseFactor {
		easeFactor = types.MinEaseFactor
	}

	hardness := types.DefaultEaseFactor / easeFactor
	durability := 1 + math.Log2(float64(repetitions))

	exponent := (daysElapsed / float64(interval)) * hardness / durability
	retention := math.Pow(expectedRetention, exponent)

	return math.Min(math.Max(retention, 0.0), 1.0)
}
