package kitchen

// Stats are the lifetime operation counters. They only grow.
type Stats struct {
	Placed    int `json:"orders_placed"`
	PickedUp  int `json:"orders_picked_up"`
	Discarded int `json:"orders_discarded"`
	Moved     int `json:"orders_moved"`
}

// OrderSummary is the per-order line of a status snapshot.
type OrderSummary struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Temperature Temperature `json:"temperature"`
}

// TierStatus reports one tier's occupancy.
type TierStatus struct {
	Count    int            `json:"count"`
	Capacity int            `json:"capacity"`
	Orders   []OrderSummary `json:"orders"`
}

// Status is a consistent point-in-time view of all three tiers.
type Status struct {
	Cooler TierStatus `json:"cooler"`
	Heater TierStatus `json:"heater"`
	Shelf  TierStatus `json:"shelf"`
}
