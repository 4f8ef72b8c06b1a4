// Package kitchen implements a tiered, capacity-bounded store for
// perishable orders: a cooler for cold, a heater for hot, and an overflow
// shelf where anything can sit at the cost of spoiling twice as fast.
// Placement prefers the ideal tier and falls back to rebalancing and
// scored eviction under pressure. Every mutation appends to an immutable
// action ledger, and counters stay in step with it.
package kitchen

import (
	"fmt"
	"sync"
	"time"
)

// System is the concurrency-safe facade over the storage engine. Mutations
// run under an exclusive lock; status, ledger, and stats reads share a
// read lock and observe a consistent snapshot. Nothing inside the lock
// performs I/O, so hold times stay bounded.
type System struct {
	mu    sync.RWMutex
	clock func() time.Time
	eng   *engine
}

// New builds a System with the given capacities and clock.
func New(cfg Config) *System {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &System{clock: cfg.Clock, eng: newEngine(cfg)}
}

// PlaceParams describe a new order to store.
type PlaceParams struct {
	ID          string
	Name        string
	Temperature Temperature
	Freshness   time.Duration
}

// Place stores a new order, preferring its ideal tier and falling back to
// the shelf via rebalancing or eviction. It returns false with a nil
// error when every fallback is exhausted; a failed placement leaves no
// trace. Duplicate ids and malformed parameters are errors.
func (s *System) Place(p PlaceParams) (bool, error) {
	temp, err := ParseTemperature(string(p.Temperature))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}
	switch {
	case p.ID == "":
		return false, fmt.Errorf("%w: empty id", ErrInvalidOrder)
	case p.Name == "":
		return false, fmt.Errorf("%w: empty name", ErrInvalidOrder)
	case p.Freshness <= 0:
		return false, fmt.Errorf("%w: freshness %v is not positive", ErrInvalidOrder, p.Freshness)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.eng.orders[p.ID]; exists {
		return false, fmt.Errorf("place %s: %w", p.ID, ErrDuplicateOrder)
	}
	now := s.clock()
	return s.eng.place(&Order{
		ID:          p.ID,
		Name:        p.Name,
		Temperature: temp,
		Freshness:   p.Freshness,
		CreatedAt:   now,
	}, now), nil
}

// Pickup removes and returns a stored order. ErrNotFound reports an
// unknown id. ErrExpired reports an order that spoiled before pickup; it
// is discarded and the ledger records why. The returned order carries the
// location it was picked from.
func (s *System) Pickup(id string) (Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.pickup(id, s.clock())
}

// SweepExpired discards every stale order across all tiers and returns
// the number removed. Sweeping again immediately removes nothing.
func (s *System) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eng.sweepExpired(s.clock())
}

// Status reports per-tier occupancy at a single instant.
func (s *System) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.status()
}

// Ledger returns a copy of the full action history, oldest first.
func (s *System) Ledger() []Action {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.ledger()
}

// Stats returns the lifetime counters.
func (s *System) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.eng.stats
}
