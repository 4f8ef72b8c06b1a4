package kitchen

import (
	"math"
	"time"
)

// Discard scoring weights. Expiry dominates mismatch, mismatch dominates
// age, so under pressure the system sacrifices stale orders first, then
// poorly placed ones, then the oldest.
const (
	expiredPenalty  = 1000
	mismatchPenalty = 500
)

// DiscardScore ranks an order for eviction at the given instant; higher
// means more eligible. Orders outside their ideal tier are charged double
// elapsed time, mirroring the halved freshness window in IsFresh.
func DiscardScore(o *Order, now time.Time) int {
	score := 0
	if !o.IsFresh(now) {
		score += expiredPenalty
	}
	matched := o.matched()
	if !matched {
		score += mismatchPenalty
	}
	ratio := now.Sub(o.StoredAt).Seconds() / o.Freshness.Seconds()
	if !matched {
		ratio *= 2
	}
	return score + int(math.Floor(ratio*100))
}
