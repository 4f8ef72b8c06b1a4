package kitchen

import "time"

// Order is a single perishable order tracked by the system. ID, Name,
// Temperature, and Freshness are fixed at placement; Location and StoredAt
// change as the order moves between tiers.
type Order struct {
	ID          string
	Name        string
	Temperature Temperature
	Freshness   time.Duration
	CreatedAt   time.Time
	StoredAt    time.Time
	Location    Location
}

// matched reports whether the order sits in its ideal tier.
func (o *Order) matched() bool {
	return o.Location == o.Temperature.IdealLocation()
}

// IsFresh reports whether the order is still good at the given instant.
// At its ideal tier an order lasts its full freshness window; anywhere
// else the window is halved. The boundary is exclusive: an order whose
// window has exactly elapsed is stale.
func (o *Order) IsFresh(now time.Time) bool {
	window := o.Freshness
	if !o.matched() {
		window /= 2
	}
	return now.Sub(o.StoredAt) < window
}
