package kitchen

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestSystem(t *testing.T) (*System, *fakeClock) {
	t.Helper()
	clk := newFakeClock()
	cfg := DefaultConfig()
	cfg.Clock = clk.Now
	return New(cfg), clk
}

func mustPlace(t *testing.T, s *System, id string, temp Temperature, freshness time.Duration) {
	t.Helper()
	ok, err := s.Place(PlaceParams{ID: id, Name: id, Temperature: temp, Freshness: freshness})
	if err != nil {
		t.Fatalf("place %s: %v", id, err)
	}
	if !ok {
		t.Fatalf("place %s: storage full", id)
	}
}

func TestPlaceIdealTiers(t *testing.T) {
	s, _ := newTestSystem(t)
	mustPlace(t, s, "cold_1", TempCold, time.Minute)
	mustPlace(t, s, "hot_1", TempHot, time.Minute)
	mustPlace(t, s, "room_1", TempRoom, time.Minute)

	st := s.Status()
	if st.Cooler.Count != 1 || st.Heater.Count != 1 || st.Shelf.Count != 1 {
		t.Fatalf("status = %d/%d/%d, want 1/1/1", st.Cooler.Count, st.Heater.Count, st.Shelf.Count)
	}
	if st.Cooler.Orders[0].ID != "cold_1" || st.Heater.Orders[0].ID != "hot_1" || st.Shelf.Orders[0].ID != "room_1" {
		t.Errorf("orders landed in the wrong tiers: %+v", st)
	}
	for _, a := range s.Ledger() {
		if a.Type != ActionPlace {
			t.Errorf("unexpected %s entry for %s", a.Type, a.OrderID)
		}
	}
}

func TestColdOverflowShelvesSeventh(t *testing.T) {
	s, _ := newTestSystem(t)
	for i := 0; i < 6; i++ {
		mustPlace(t, s, fmt.Sprintf("cold_%d", i), TempCold, time.Minute)
	}
	if st := s.Status(); st.Cooler.Count != 6 {
		t.Fatalf("cooler count = %d, want 6", st.Cooler.Count)
	}

	mustPlace(t, s, "cold_6", TempCold, time.Minute)

	st := s.Status()
	if st.Cooler.Count != 6 || st.Shelf.Count != 1 {
		t.Fatalf("after overflow: cooler=%d shelf=%d, want 6/1", st.Cooler.Count, st.Shelf.Count)
	}
	if st.Shelf.Orders[0].ID != "cold_6" {
		t.Errorf("shelf holds %s, want cold_6", st.Shelf.Orders[0].ID)
	}
	if moved := s.Stats().Moved; moved != 0 {
		t.Errorf("moved = %d, want 0 with an empty shelf to rebalance from", moved)
	}
}

func TestHotOverflowWithFullTiers(t *testing.T) {
	s, _ := newTestSystem(t)
	for i := 0; i < 6; i++ {
		mustPlace(t, s, fmt.Sprintf("cold_%d", i), TempCold, time.Minute)
		mustPlace(t, s, fmt.Sprintf("hot_%d", i), TempHot, time.Minute)
	}

	mustPlace(t, s, "hot_extra", TempHot, time.Minute)

	st := s.Status()
	if st.Heater.Count != 6 || st.Shelf.Count != 1 {
		t.Fatalf("heater=%d shelf=%d, want 6/1", st.Heater.Count, st.Shelf.Count)
	}
	if st.Shelf.Orders[0].ID != "hot_extra" {
		t.Errorf("shelf holds %s, want hot_extra", st.Shelf.Orders[0].ID)
	}
	if moved := s.Stats().Moved; moved != 0 {
		t.Errorf("moved = %d, want 0 with no rebalance candidate", moved)
	}
}

func TestEvictionPrefersExpiredMismatched(t *testing.T) {
	s, clk := newTestSystem(t)
	// fill the cooler so the next cold order lands on the shelf, mismatched
	for i := 0; i < 6; i++ {
		mustPlace(t, s, fmt.Sprintf("cold_%d", i), TempCold, time.Hour)
	}
	mustPlace(t, s, "cold_shelved", TempCold, 60*time.Second)
	for i := 0; i < 11; i++ {
		mustPlace(t, s, fmt.Sprintf("room_%d", i), TempRoom, time.Hour)
	}
	if st := s.Status(); st.Shelf.Count != 12 {
		t.Fatalf("shelf count = %d, want full 12", st.Shelf.Count)
	}

	// past the shelved cold order's halved 30s window, well inside everyone else's
	clk.Advance(45 * time.Second)

	before := len(s.Ledger())
	mustPlace(t, s, "room_new", TempRoom, time.Hour)

	if _, err := s.Pickup("cold_shelved"); !errors.Is(err, ErrNotFound) {
		t.Errorf("evicted order pickup err = %v, want ErrNotFound", err)
	}
	if st := s.Status(); st.Shelf.Count != 12 {
		t.Errorf("shelf count = %d, want 12 after evict-and-place", st.Shelf.Count)
	}

	tail := s.Ledger()[before:]
	if len(tail) != 2 {
		t.Fatalf("ledger grew by %d entries, want discard then place", len(tail))
	}
	if tail[0].Type != ActionDiscard || tail[0].OrderID != "cold_shelved" {
		t.Errorf("first new entry = %+v, want discard of cold_shelved", tail[0])
	}
	if tail[1].Type != ActionPlace || tail[1].OrderID != "room_new" {
		t.Errorf("second new entry = %+v, want place of room_new", tail[1])
	}
}

func TestEvictionWhenNothingExpired(t *testing.T) {
	s, clk := newTestSystem(t)
	for i := 0; i < 12; i++ {
		mustPlace(t, s, fmt.Sprintf("room_%d", i), TempRoom, time.Hour)
		clk.Advance(time.Second)
	}

	// all fresh; the oldest still loses
	mustPlace(t, s, "room_new", TempRoom, time.Hour)

	if _, err := s.Pickup("room_0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("oldest order should have been evicted, pickup err = %v", err)
	}
	if discarded := s.Stats().Discarded; discarded != 1 {
		t.Errorf("discarded = %d, want 1", discarded)
	}
}

func TestPickupRoundTrip(t *testing.T) {
	s, _ := newTestSystem(t)
	mustPlace(t, s, "cold_1", TempCold, 90*time.Second)

	o, err := s.Pickup("cold_1")
	if err != nil {
		t.Fatalf("pickup: %v", err)
	}
	if o.Name != "cold_1" || o.Temperature != TempCold || o.Freshness != 90*time.Second {
		t.Errorf("picked order = %+v, want the fields it was placed with", o)
	}
	if o.Location != LocCooler {
		t.Errorf("picked order location = %q, want cooler", o.Location)
	}

	if st := s.Status(); st.Cooler.Count != 0 {
		t.Errorf("cooler count = %d after pickup, want 0", st.Cooler.Count)
	}
	if _, err := s.Pickup("cold_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second pickup err = %v, want ErrNotFound", err)
	}
	if stats := s.Stats(); stats.Placed != 1 || stats.PickedUp != 1 {
		t.Errorf("stats = %+v, want placed=1 picked_up=1", stats)
	}
}

func TestPickupUnknown(t *testing.T) {
	s, _ := newTestSystem(t)
	if _, err := s.Pickup("order_404_0000"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if n := len(s.Ledger()); n != 0 {
		t.Errorf("ledger length = %d, want 0 for a miss", n)
	}
}

func TestPickupExpiryBoundary(t *testing.T) {
	s, clk := newTestSystem(t)
	mustPlace(t, s, "cold_1", TempCold, 100*time.Second)

	clk.Advance(100 * time.Second)
	if _, err := s.Pickup("cold_1"); !errors.Is(err, ErrExpired) {
		t.Fatalf("pickup at exactly the freshness window: err = %v, want ErrExpired", err)
	}

	ledger := s.Ledger()
	last := ledger[len(ledger)-1]
	if last.Type != ActionDiscard || last.OrderID != "cold_1" {
		t.Errorf("ledger tail = %+v, want discard of cold_1", last)
	}
	if stats := s.Stats(); stats.Discarded != 1 || stats.PickedUp != 0 {
		t.Errorf("stats = %+v, want discarded=1 picked_up=0", stats)
	}
	if _, err := s.Pickup("cold_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("pickup after discard err = %v, want ErrNotFound", err)
	}
}

func TestPlaceDuplicate(t *testing.T) {
	s, _ := newTestSystem(t)
	mustPlace(t, s, "cold_1", TempCold, time.Minute)

	ok, err := s.Place(PlaceParams{ID: "cold_1", Name: "again", Temperature: TempHot, Freshness: time.Minute})
	if !errors.Is(err, ErrDuplicateOrder) {
		t.Fatalf("err = %v, want ErrDuplicateOrder", err)
	}
	if ok {
		t.Fatal("duplicate place returned ok")
	}
	if placed := s.Stats().Placed; placed != 1 {
		t.Errorf("placed = %d, want 1", placed)
	}
	if n := len(s.Ledger()); n != 1 {
		t.Errorf("ledger length = %d, want 1", n)
	}
}

func TestPlaceInvalid(t *testing.T) {
	s, _ := newTestSystem(t)
	cases := []struct {
		name string
		p    PlaceParams
	}{
		{"empty id", PlaceParams{Name: "x", Temperature: TempHot, Freshness: time.Minute}},
		{"empty name", PlaceParams{ID: "a", Temperature: TempHot, Freshness: time.Minute}},
		{"zero freshness", PlaceParams{ID: "a", Name: "x", Temperature: TempHot}},
		{"negative freshness", PlaceParams{ID: "a", Name: "x", Temperature: TempHot, Freshness: -time.Second}},
		{"bad temperature", PlaceParams{ID: "a", Name: "x", Temperature: "frozen", Freshness: time.Minute}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ok, err := s.Place(c.p)
			if !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("err = %v, want ErrInvalidOrder", err)
			}
			if ok {
				t.Fatal("invalid place returned ok")
			}
		})
	}
	if n := len(s.Ledger()); n != 0 {
		t.Errorf("ledger length = %d, want 0", n)
	}
}

func TestPlaceFailsWithZeroShelf(t *testing.T) {
	clk := newFakeClock()
	s := New(Config{CoolerCapacity: 1, HeaterCapacity: 1, ShelfCapacity: 0, Clock: clk.Now})
	mustPlace(t, s, "cold_1", TempCold, time.Minute)

	ok, err := s.Place(PlaceParams{ID: "cold_2", Name: "cold_2", Temperature: TempCold, Freshness: time.Minute})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if ok {
		t.Fatal("place with every tier full returned ok")
	}
	if n := len(s.Ledger()); n != 1 {
		t.Errorf("ledger length = %d, want 1: a failed place logs nothing", n)
	}
	if _, err := s.Pickup("cold_2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("failed place left an index entry: %v", err)
	}
	if stats := s.Stats(); stats.Placed != 1 || stats.Discarded != 0 {
		t.Errorf("stats = %+v, want placed=1 and no discards", stats)
	}
}

func TestSweepIdempotent(t *testing.T) {
	s, clk := newTestSystem(t)
	mustPlace(t, s, "cold_brief", TempCold, 10*time.Second)
	mustPlace(t, s, "hot_brief", TempHot, 10*time.Second)
	mustPlace(t, s, "room_long", TempRoom, time.Hour)

	clk.Advance(30 * time.Second)
	if n := s.SweepExpired(); n != 2 {
		t.Fatalf("first sweep removed %d, want 2", n)
	}
	if n := s.SweepExpired(); n != 0 {
		t.Fatalf("second sweep removed %d, want 0", n)
	}

	st := s.Status()
	if st.Cooler.Count != 0 || st.Heater.Count != 0 || st.Shelf.Count != 1 {
		t.Errorf("status = %d/%d/%d, want 0/0/1", st.Cooler.Count, st.Heater.Count, st.Shelf.Count)
	}
	discards := 0
	for _, a := range s.Ledger() {
		if a.Type == ActionDiscard {
			discards++
		}
	}
	if discards != 2 {
		t.Errorf("discard entries = %d, want 2", discards)
	}
	if got := s.Stats().Discarded; got != 2 {
		t.Errorf("discarded = %d, want 2", got)
	}
}

func TestLedgerAppendOrder(t *testing.T) {
	s, clk := newTestSystem(t)
	mustPlace(t, s, "cold_1", TempCold, 10*time.Second)
	mustPlace(t, s, "room_1", TempRoom, time.Hour)
	if _, err := s.Pickup("room_1"); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	clk.Advance(time.Minute)
	s.SweepExpired()

	want := []ActionType{ActionPlace, ActionPlace, ActionPickup, ActionDiscard}
	ledger := s.Ledger()
	if len(ledger) != len(want) {
		t.Fatalf("ledger length = %d, want %d", len(ledger), len(want))
	}
	for i, a := range ledger {
		if a.Type != want[i] {
			t.Errorf("entry %d = %s, want %s", i, a.Type, want[i])
		}
	}
	for i := 1; i < len(ledger); i++ {
		if ledger[i].Timestamp.Before(ledger[i-1].Timestamp) {
			t.Errorf("ledger timestamps reordered at entry %d", i)
		}
	}
}

func TestStatsMatchLedger(t *testing.T) {
	s, clk := newTestSystem(t)
	for i := 0; i < 8; i++ {
		mustPlace(t, s, fmt.Sprintf("cold_%d", i), TempCold, 40*time.Second)
	}
	if _, err := s.Pickup("cold_0"); err != nil {
		t.Fatalf("pickup: %v", err)
	}
	// the two shelved cold orders have a 20s window; the cooler keeps its 40s
	clk.Advance(25 * time.Second)
	s.SweepExpired()

	counts := map[ActionType]int{}
	for _, a := range s.Ledger() {
		counts[a.Type]++
	}
	stats := s.Stats()
	if stats.Placed != counts[ActionPlace] || stats.PickedUp != counts[ActionPickup] ||
		stats.Discarded != counts[ActionDiscard] || stats.Moved != counts[ActionMove] {
		t.Errorf("stats %+v do not match ledger counts %v", stats, counts)
	}
}

func TestEvictionChurnKeepsShelfBounded(t *testing.T) {
	clk := newFakeClock()
	s := New(Config{CoolerCapacity: 2, HeaterCapacity: 2, ShelfCapacity: 3, Clock: clk.Now})
	for i := 0; i < 50; i++ {
		mustPlace(t, s, fmt.Sprintf("room_%d", i), TempRoom, time.Hour)
		clk.Advance(time.Second)
	}

	if st := s.Status(); st.Shelf.Count != 3 {
		t.Fatalf("shelf count = %d, want capacity 3", st.Shelf.Count)
	}
	stats := s.Stats()
	if stats.Placed != 50 || stats.Discarded != 47 {
		t.Errorf("stats = %+v, want 50 placed 47 discarded", stats)
	}
}

func TestConcurrentPlacementStorm(t *testing.T) {
	s := New(DefaultConfig())
	temps := []Temperature{TempCold, TempHot, TempRoom}

	var readers sync.WaitGroup
	for r := 0; r < 4; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for j := 0; j < 200; j++ {
				st := s.Status()
				if st.Cooler.Count > st.Cooler.Capacity || st.Heater.Count > st.Heater.Capacity ||
					st.Shelf.Count > st.Shelf.Capacity {
					t.Errorf("capacity exceeded: %d/%d/%d", st.Cooler.Count, st.Heater.Count, st.Shelf.Count)
					return
				}
			}
		}()
	}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.Place(PlaceParams{
				ID:          fmt.Sprintf("order_%03d", i),
				Name:        fmt.Sprintf("order_%03d", i),
				Temperature: temps[i%3],
				Freshness:   time.Hour,
			})
			if err != nil {
				t.Errorf("place %d: %v", i, err)
			}
			if !ok {
				t.Errorf("place %d: a full shelf must evict, never fail", i)
			}
		}(i)
	}
	wg.Wait()
	readers.Wait()

	st := s.Status()
	if st.Cooler.Count != 6 || st.Heater.Count != 6 || st.Shelf.Count != 12 {
		t.Fatalf("final status = %d/%d/%d, want 6/6/12", st.Cooler.Count, st.Heater.Count, st.Shelf.Count)
	}
	stats := s.Stats()
	if stats.Placed != 100 {
		t.Errorf("placed = %d, want 100", stats.Placed)
	}
	if stats.Discarded != 76 {
		t.Errorf("discarded = %d, want 76 evictions", stats.Discarded)
	}
	if stats.Moved != 0 {
		t.Errorf("moved = %d, want 0", stats.Moved)
	}

	// every resident appears in exactly one tier
	seen := map[string]int{}
	for _, tier := range []TierStatus{st.Cooler, st.Heater, st.Shelf} {
		for _, o := range tier.Orders {
			seen[o.ID]++
		}
	}
	if len(seen) != 24 {
		t.Errorf("resident orders = %d, want 24", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("order %s appears in %d tiers", id, n)
		}
	}

	// survivors can all be picked up concurrently; the rest were evicted
	var (
		mu             sync.Mutex
		found, missing int
		pw             sync.WaitGroup
	)
	for i := 0; i < 100; i++ {
		pw.Add(1)
		go func(i int) {
			defer pw.Done()
			_, err := s.Pickup(fmt.Sprintf("order_%03d", i))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				found++
			case errors.Is(err, ErrNotFound):
				missing++
			default:
				t.Errorf("pickup %d: %v", i, err)
			}
		}(i)
	}
	pw.Wait()

	if found != 24 || missing != 76 {
		t.Errorf("pickups found=%d missing=%d, want 24/76", found, missing)
	}
	if got := s.Stats().PickedUp; got != 24 {
		t.Errorf("picked up = %d, want 24", got)
	}
}
