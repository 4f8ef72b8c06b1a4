package kitchen

import "time"

// tier is a bounded, ordered collection of stored orders. Insertion order
// is preserved, so scans run oldest first.
type tier struct {
	name     Location
	capacity int
	orders   []*Order
}

func newTier(name Location, capacity int) *tier {
	return &tier{name: name, capacity: capacity}
}

func (t *tier) hasSpace() bool {
	return len(t.orders) < t.capacity
}

// add appends the order and stamps its location and stored-at time.
// Callers must have checked hasSpace.
func (t *tier) add(o *Order, now time.Time) {
	o.Location = t.name
	o.StoredAt = now
	t.orders = append(t.orders, o)
}

// removeAt deletes and returns the order at index i.
func (t *tier) removeAt(i int) *Order {
	o := t.orders[i]
	t.orders = append(t.orders[:i], t.orders[i+1:]...)
	o.Location = LocNone
	return o
}

// remove deletes the order with the given id, reporting whether it was
// present.
func (t *tier) remove(id string) bool {
	for i, o := range t.orders {
		if o.ID == id {
			t.removeAt(i)
			return true
		}
	}
	return false
}

func (t *tier) status() TierStatus {
	st := TierStatus{
		Count:    len(t.orders),
		Capacity: t.capacity,
		Orders:   make([]OrderSummary, 0, len(t.orders)),
	}
	for _, o := range t.orders {
		st.Orders = append(st.Orders, OrderSummary{
			ID:          o.ID,
			Name:        o.Name,
			Temperature: o.Temperature,
		})
	}
	return st
}
