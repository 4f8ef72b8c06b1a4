package feed

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"kitchend/internal/kitchen"
)

// Order is one generated order, ready to be placed.
type Order struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Temperature      kitchen.Temperature `json:"temperature"`
	FreshnessSeconds int                 `json:"freshness_seconds"`
}

// Freshness returns the order's freshness window as a duration.
func (o Order) Freshness() time.Duration {
	return time.Duration(o.FreshnessSeconds) * time.Second
}

// PlaceParams converts the order into kitchen placement parameters.
func (o Order) PlaceParams() kitchen.PlaceParams {
	return kitchen.PlaceParams{
		ID:          o.ID,
		Name:        o.Name,
		Temperature: o.Temperature,
		Freshness:   o.Freshness(),
	}
}

// Generator produces sequentially numbered random orders from a menu.
// It is safe for concurrent use.
type Generator struct {
	mu   sync.Mutex
	menu []MenuItem
	rnd  *rand.Rand
	seq  int
}

// NewGenerator seeds a generator over the given menu. The same seed
// yields the same order stream.
func NewGenerator(menu []MenuItem, seed int64) *Generator {
	return &Generator{menu: menu, rnd: rand.New(rand.NewSource(seed))}
}

// Next returns the next order: a random dish with an id like
// order_017_4821.
func (g *Generator) Next() Order {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	dish := g.menu[g.rnd.Intn(len(g.menu))]
	return Order{
		ID:               fmt.Sprintf("order_%03d_%04d", g.seq, 1000+g.rnd.Intn(9000)),
		Name:             dish.Name,
		Temperature:      dish.Temperature,
		FreshnessSeconds: dish.FreshnessSeconds,
	}
}

// Orders returns the next n orders.
func (g *Generator) Orders(n int) []Order {
	out := make([]Order, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.Next())
	}
	return out
}
