// Package sweeper drives periodic expiry cleanup against the kitchen
// system.
package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Target is the sweepable surface of the kitchen system.
type Target interface {
	SweepExpired() int
}

// Run invokes SweepExpired on the target at the given interval until the
// context is canceled. Sweeps that removed nothing are not logged.
func Run(ctx context.Context, target Target, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := target.SweepExpired(); n > 0 {
				log.Info("swept expired orders", zap.Int("removed", n))
			}
		}
	}
}
