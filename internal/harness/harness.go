// Package harness simulates a working day against the kitchen system:
// orders arrive at a fixed rate, couriers collect them after a random
// delay, and a background sweeper clears out anything that spoiled.
package harness

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"kitchend/internal/feed"
	"kitchend/internal/kitchen"
	"kitchend/internal/sweeper"
)

// Config controls a simulation run.
type Config struct {
	Rate          float64       // orders placed per second
	Count         int           // total orders to place
	PickupMin     time.Duration // earliest pickup after placement
	PickupMax     time.Duration // latest pickup after placement
	SweepInterval time.Duration

	// Seed drives the pickup delays. Zero seeds from the wall clock.
	Seed int64
}

// DefaultConfig returns the standard simulation shape: two orders per
// second, twenty orders, pickups four to eight seconds out, sweeps every
// second.
func DefaultConfig() Config {
	return Config{
		Rate:          2.0,
		Count:         20,
		PickupMin:     4 * time.Second,
		PickupMax:     8 * time.Second,
		SweepInterval: time.Second,
	}
}

func (c Config) validate() error {
	switch {
	case c.Rate <= 0:
		return fmt.Errorf("rate %v: must be positive", c.Rate)
	case c.Count <= 0:
		return fmt.Errorf("count %d: must be positive", c.Count)
	case c.PickupMin < 0:
		return fmt.Errorf("pickup window: min %v is negative", c.PickupMin)
	case c.PickupMax < c.PickupMin:
		return fmt.Errorf("pickup window: max %v is before min %v", c.PickupMax, c.PickupMin)
	case c.SweepInterval <= 0:
		return fmt.Errorf("sweep interval %v: must be positive", c.SweepInterval)
	}
	return nil
}

// Summary reports the outcome of a run.
type Summary struct {
	Placed   int              `json:"orders_placed"`
	Failed   int              `json:"orders_failed"`
	PickedUp int              `json:"orders_picked_up"`
	Missed   int              `json:"orders_missed"`
	Stats    kitchen.Stats    `json:"stats"`
	Duration time.Duration    `json:"duration"`
	Actions  []kitchen.Action `json:"-"`
}

// Harness drives a full simulation against one kitchen system. The system
// should start empty; run totals are read off its counters.
type Harness struct {
	sys *kitchen.System
	gen *feed.Generator
	log *zap.Logger
	cfg Config
	rnd *rand.Rand
}

// New builds a harness over the given system and order feed.
func New(sys *kitchen.System, gen *feed.Generator, log *zap.Logger, cfg Config) (*Harness, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Harness{
		sys: sys,
		gen: gen,
		log: log,
		cfg: cfg,
		rnd: rand.New(rand.NewSource(seed)),
	}, nil
}

// Run places orders at the configured rate, schedules a pickup for each
// placed order, and sweeps on an interval until every order resolved. A
// canceled context stops placements and releases pending pickups early;
// the partial summary is still returned.
func (h *Harness) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweeper.Run(sweepCtx, h.sys, h.cfg.SweepInterval, h.log.Named("sweeper"))

	interval := time.Duration(float64(time.Second) / h.cfg.Rate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		wg             sync.WaitGroup
		placed, failed int
	)
placing:
	for i := 0; i < h.cfg.Count; i++ {
		order := h.gen.Next()
		ok, err := h.sys.Place(order.PlaceParams())
		switch {
		case err != nil:
			failed++
			h.log.Warn("place rejected",
				zap.String("order", order.ID),
				zap.Error(err))
		case !ok:
			failed++
			h.log.Warn("storage full",
				zap.String("order", order.ID),
				zap.String("name", order.Name))
		default:
			placed++
			h.log.Info("order placed",
				zap.String("order", order.ID),
				zap.String("name", order.Name),
				zap.String("temperature", string(order.Temperature)))
			wg.Add(1)
			go h.pickup(ctx, order, h.pickupDelay(), &wg)
		}

		if i == h.cfg.Count-1 {
			break
		}
		select {
		case <-ctx.Done():
			break placing
		case <-ticker.C:
		}
	}
	wg.Wait()
	stopSweep()
	h.sys.SweepExpired()

	stats := h.sys.Stats()
	sum := Summary{
		Placed:   placed,
		Failed:   failed,
		PickedUp: stats.PickedUp,
		Missed:   placed - stats.PickedUp,
		Stats:    stats,
		Duration: time.Since(start),
		Actions:  h.sys.Ledger(),
	}
	h.log.Info("run finished",
		zap.Int("placed", sum.Placed),
		zap.Int("failed", sum.Failed),
		zap.Int("picked_up", sum.PickedUp),
		zap.Int("missed", sum.Missed),
		zap.Duration("duration", sum.Duration))
	return sum, ctx.Err()
}

// pickup collects one order after its delay has passed.
func (h *Harness) pickup(ctx context.Context, order feed.Order, delay time.Duration, wg *sync.WaitGroup) {
	defer wg.Done()
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	_, err := h.sys.Pickup(order.ID)
	switch {
	case err == nil:
		h.log.Info("order picked up",
			zap.String("order", order.ID),
			zap.String("name", order.Name))
	case errors.Is(err, kitchen.ErrExpired):
		h.log.Warn("order expired before pickup",
			zap.String("order", order.ID),
			zap.String("name", order.Name))
	case errors.Is(err, kitchen.ErrNotFound):
		h.log.Warn("order gone before pickup",
			zap.String("order", order.ID),
			zap.String("name", order.Name))
	default:
		h.log.Error("pickup failed",
			zap.String("order", order.ID),
			zap.Error(err))
	}
}

func (h *Harness) pickupDelay() time.Duration {
	span := h.cfg.PickupMax - h.cfg.PickupMin
	if span <= 0 {
		return h.cfg.PickupMin
	}
	return h.cfg.PickupMin + time.Duration(h.rnd.Int63n(int64(span)))
}
