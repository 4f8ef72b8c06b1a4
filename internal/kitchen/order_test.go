package kitchen

import (
	"testing"
	"time"
)

func TestIsFreshAtIdealTier(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{
		ID:          "order_001_1000",
		Name:        "Caesar Salad",
		Temperature: TempCold,
		Freshness:   100 * time.Second,
		StoredAt:    base,
		Location:    LocCooler,
	}

	if !o.IsFresh(base.Add(99 * time.Second)) {
		t.Error("fresh at 99s of a 100s window, got stale")
	}
	if o.IsFresh(base.Add(100 * time.Second)) {
		t.Error("exactly elapsed window must be stale")
	}
	if o.IsFresh(base.Add(101 * time.Second)) {
		t.Error("stale at 101s of a 100s window, got fresh")
	}
}

func TestIsFreshMismatchedHalvesWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{
		ID:          "order_002_1000",
		Name:        "Caesar Salad",
		Temperature: TempCold,
		Freshness:   100 * time.Second,
		StoredAt:    base,
		Location:    LocShelf,
	}

	if !o.IsFresh(base.Add(49 * time.Second)) {
		t.Error("fresh at 49s of a halved 50s window, got stale")
	}
	if o.IsFresh(base.Add(50 * time.Second)) {
		t.Error("exactly elapsed halved window must be stale")
	}
}

func TestRoomOrdersMatchShelf(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{
		ID:          "order_003_1000",
		Name:        "Sandwich",
		Temperature: TempRoom,
		Freshness:   100 * time.Second,
		StoredAt:    base,
		Location:    LocShelf,
	}

	// the shelf is the ideal tier for room orders, so the full window applies
	if !o.IsFresh(base.Add(99 * time.Second)) {
		t.Error("room order on the shelf got the halved window")
	}
}

func TestIdealLocation(t *testing.T) {
	cases := []struct {
		temp Temperature
		want Location
	}{
		{TempCold, LocCooler},
		{TempHot, LocHeater},
		{TempRoom, LocShelf},
	}
	for _, c := range cases {
		if got := c.temp.IdealLocation(); got != c.want {
			t.Errorf("IdealLocation(%s) = %s, want %s", c.temp, got, c.want)
		}
	}
}

func TestParseTemperature(t *testing.T) {
	for _, s := range []string{"hot", "COLD", "Room"} {
		if _, err := ParseTemperature(s); err != nil {
			t.Errorf("ParseTemperature(%q): %v", s, err)
		}
	}
	if _, err := ParseTemperature("frozen"); err == nil {
		t.Error("ParseTemperature(frozen): want error")
	}
}
