// Package metrics exposes the kitchen system's counters and occupancy as
// prometheus collectors. Everything is read off facade snapshots, so the
// scrape path never touches engine internals.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"kitchend/internal/kitchen"
)

// New builds a registry over the given system.
func New(sys *kitchen.System) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	counters := []struct {
		name string
		help string
		read func(kitchen.Stats) int
	}{
		{"kitchend_orders_placed_total", "Orders successfully placed into storage.",
			func(s kitchen.Stats) int { return s.Placed }},
		{"kitchend_orders_picked_up_total", "Orders collected while still fresh.",
			func(s kitchen.Stats) int { return s.PickedUp }},
		{"kitchend_orders_discarded_total", "Orders discarded by expiry or eviction.",
			func(s kitchen.Stats) int { return s.Discarded }},
		{"kitchend_orders_moved_total", "Orders rebalanced from the shelf to their ideal tier.",
			func(s kitchen.Stats) int { return s.Moved }},
	}
	for _, c := range counters {
		read := c.read
		reg.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: c.name,
			Help: c.help,
		}, func() float64 { return float64(read(sys.Stats())) }))
	}

	tiers := []struct {
		name string
		pick func(kitchen.Status) kitchen.TierStatus
	}{
		{"cooler", func(s kitchen.Status) kitchen.TierStatus { return s.Cooler }},
		{"heater", func(s kitchen.Status) kitchen.TierStatus { return s.Heater }},
		{"shelf", func(s kitchen.Status) kitchen.TierStatus { return s.Shelf }},
	}
	for _, t := range tiers {
		pick := t.pick
		labels := prometheus.Labels{"tier": t.name}
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "kitchend_tier_occupancy",
			Help:        "Orders currently stored in the tier.",
			ConstLabels: labels,
		}, func() float64 { return float64(pick(sys.Status()).Count) }))
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "kitchend_tier_capacity",
			Help:        "Maximum orders the tier can hold.",
			ConstLabels: labels,
		}, func() float64 { return float64(pick(sys.Status()).Capacity) }))
	}

	return reg
}
