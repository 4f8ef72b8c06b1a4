package kitchen

import (
	"fmt"
	"time"
)

// engine owns the tiers, the order index, the ledger, and the counters.
// It is not safe for concurrent use; System serializes access to it.
type engine struct {
	cooler *tier
	heater *tier
	shelf  *tier

	orders  map[string]*Order
	actions []Action
	stats   Stats
}

func newEngine(cfg Config) *engine {
	return &engine{
		cooler: newTier(LocCooler, cfg.CoolerCapacity),
		heater: newTier(LocHeater, cfg.HeaterCapacity),
		shelf:  newTier(LocShelf, cfg.ShelfCapacity),
		orders: make(map[string]*Order),
	}
}

func (e *engine) tierFor(loc Location) *tier {
	switch loc {
	case LocCooler:
		return e.cooler
	case LocHeater:
		return e.heater
	default:
		return e.shelf
	}
}

func (e *engine) log(now time.Time, id string, kind ActionType, target Location, details string) {
	e.actions = append(e.actions, Action{
		Timestamp: now,
		OrderID:   id,
		Type:      kind,
		Target:    target,
		Details:   details,
	})
}

// place runs the placement ladder for a new order: ideal tier, rebalance
// then shelf, direct shelf, evict then shelf. The first branch that sticks
// wins and logs a PLACE; a fully failed attempt leaves no trace in the
// tiers, the index, or the ledger.
func (e *engine) place(o *Order, now time.Time) bool {
	switch {
	case e.storeAtIdeal(o, now):
		e.log(now, o.ID, ActionPlace, o.Location, fmt.Sprintf("Stored %s at ideal temperature", o.Name))
	case e.makeRoom(o, now):
		e.log(now, o.ID, ActionPlace, o.Location, fmt.Sprintf("Stored %s after making room", o.Name))
	case e.evictAndStore(o, now):
		e.log(now, o.ID, ActionPlace, o.Location, fmt.Sprintf("Stored %s after discarding old order", o.Name))
	default:
		return false
	}
	e.orders[o.ID] = o
	e.stats.Placed++
	return true
}

// storeAtIdeal places the order in the tier matching its temperature when
// that tier has room.
func (e *engine) storeAtIdeal(o *Order, now time.Time) bool {
	ideal := e.tierFor(o.Temperature.IdealLocation())
	if !ideal.hasSpace() {
		return false
	}
	ideal.add(o, now)
	return true
}

// makeRoom handles overflow onto the shelf. For hot and cold orders whose
// ideal tier has an open slot it first tries to free shelf space by
// relocating a matching resident; a taken branch that fails does not fall
// through. Room orders and orders with a full ideal tier shelve directly.
func (e *engine) makeRoom(o *Order, now time.Time) bool {
	switch {
	case o.Temperature == TempCold && e.cooler.hasSpace():
		if e.rebalanceInto(e.cooler, TempCold, now) && e.shelf.hasSpace() {
			e.shelf.add(o, now)
			return true
		}
	case o.Temperature == TempHot && e.heater.hasSpace():
		if e.rebalanceInto(e.heater, TempHot, now) && e.shelf.hasSpace() {
			e.shelf.add(o, now)
			return true
		}
	case e.shelf.hasSpace():
		e.shelf.add(o, now)
		return true
	}
	return false
}

// rebalanceInto relocates the oldest shelf order whose ideal tier is dst,
// provided dst has room. The move is logged and counted, and the order's
// stored-at time restarts in its new tier.
func (e *engine) rebalanceInto(dst *tier, class Temperature, now time.Time) bool {
	if !dst.hasSpace() {
		return false
	}
	for i, o := range e.shelf.orders {
		if o.Temperature != class {
			continue
		}
		e.shelf.removeAt(i)
		dst.add(o, now)
		e.log(now, o.ID, ActionMove, dst.name, fmt.Sprintf("Moved %s from shelf to %s", o.Name, dst.name))
		e.stats.Moved++
		return true
	}
	return false
}

// evictAndStore frees a slot on the full shelf by discarding the
// highest-scoring resident, then shelves the new order.
func (e *engine) evictAndStore(o *Order, now time.Time) bool {
	if e.shelf.hasSpace() {
		return false
	}
	idx, ok := e.chooseDiscard(now)
	if !ok {
		return false
	}
	victim := e.shelf.removeAt(idx)
	delete(e.orders, victim.ID)
	e.stats.Discarded++
	e.log(now, victim.ID, ActionDiscard, LocShelf, fmt.Sprintf("Discarded %s to make room", victim.Name))
	e.shelf.add(o, now)
	return true
}

// chooseDiscard returns the index of the shelf order with the highest
// discard score. The strictly-greater comparison keeps the first of any
// tied pair, so the choice is stable for a fixed shelf and instant.
func (e *engine) chooseDiscard(now time.Time) (int, bool) {
	best, bestScore := -1, 0
	for i, o := range e.shelf.orders {
		score := DiscardScore(o, now)
		if best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best, best != -1
}

// pickup removes and returns the order with the given id. A stale order is
// discarded instead; the ledger records which way it went.
func (e *engine) pickup(id string, now time.Time) (Order, error) {
	o, ok := e.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	fresh := o.IsFresh(now)
	out := *o
	e.tierFor(out.Location).remove(id)
	delete(e.orders, id)
	if !fresh {
		e.stats.Discarded++
		e.log(now, id, ActionDiscard, out.Location, fmt.Sprintf("Discarded expired %s", o.Name))
		return Order{}, ErrExpired
	}
	e.stats.PickedUp++
	e.log(now, id, ActionPickup, out.Location, fmt.Sprintf("Picked up %s", o.Name))
	return out, nil
}

// sweepExpired removes every stale order from every tier, returning the
// number discarded.
func (e *engine) sweepExpired(now time.Time) int {
	removed := 0
	for _, t := range []*tier{e.cooler, e.heater, e.shelf} {
		var stale []*Order
		for _, o := range t.orders {
			if !o.IsFresh(now) {
				stale = append(stale, o)
			}
		}
		for _, o := range stale {
			t.remove(o.ID)
			delete(e.orders, o.ID)
			e.stats.Discarded++
			e.log(now, o.ID, ActionDiscard, t.name, fmt.Sprintf("Auto-discarded expired %s", o.Name))
			removed++
		}
	}
	return removed
}

func (e *engine) status() Status {
	return Status{
		Cooler: e.cooler.status(),
		Heater: e.heater.status(),
		Shelf:  e.shelf.status(),
	}
}

func (e *engine) ledger() []Action {
	out := make([]Action, len(e.actions))
	copy(out, e.actions)
	return out
}
