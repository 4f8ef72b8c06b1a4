package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kitchend/internal/kitchen"
)

func init() {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of the storage system",
		Run:   runDemo,
	}

	RootCmd.AddCommand(cmd)
}

func runDemo(cmd *cobra.Command, args []string) {
	sys := kitchen.New(kitchen.DefaultConfig())

	fmt.Println("Kitchen initialized with empty storage:")
	printStatus(sys.Status())

	fmt.Println("\nPlacing orders...")
	orders := []kitchen.PlaceParams{
		{ID: "pizza_001", Name: "Margherita Pizza", Temperature: kitchen.TempHot, Freshness: 300 * time.Second},
		{ID: "salad_001", Name: "Caesar Salad", Temperature: kitchen.TempCold, Freshness: 600 * time.Second},
		{ID: "bread_001", Name: "Fresh Baguette", Temperature: kitchen.TempRoom, Freshness: 1200 * time.Second},
		{ID: "ice_cream_001", Name: "Vanilla Ice Cream", Temperature: kitchen.TempCold, Freshness: 900 * time.Second},
		{ID: "soup_001", Name: "Tomato Soup", Temperature: kitchen.TempHot, Freshness: 600 * time.Second},
	}
	for _, p := range orders {
		ok, err := sys.Place(p)
		switch {
		case err != nil:
			fmt.Printf("  x %s rejected: %v\n", p.Name, err)
		case !ok:
			fmt.Printf("  x %s: storage full\n", p.Name)
		default:
			fmt.Printf("  + %s placed\n", p.Name)
		}
	}

	fmt.Println("\nStorage status after placing orders:")
	printStatus(sys.Status())

	fmt.Println("\nPicking up orders...")
	for _, id := range []string{"pizza_001", "salad_001"} {
		o, err := sys.Pickup(id)
		switch {
		case errors.Is(err, kitchen.ErrExpired):
			fmt.Printf("  x %s expired before pickup\n", id)
		case err != nil:
			fmt.Printf("  x %s: %v\n", id, err)
		default:
			fmt.Printf("  + %s picked up from %s\n", o.Name, o.Location)
		}
	}

	fmt.Println("\nStorage status after pickups:")
	printStatus(sys.Status())

	fmt.Println("\nAction ledger:")
	for _, a := range sys.Ledger() {
		fmt.Printf("  [%s] %s: %s -> %s\n",
			a.Timestamp.Format("15:04:05"), a.Type, a.OrderID, a.Target)
	}

	st := sys.Stats()
	fmt.Println("\nStatistics:")
	fmt.Printf("  Placed:    %d\n", st.Placed)
	fmt.Printf("  Picked up: %d\n", st.PickedUp)
	fmt.Printf("  Discarded: %d\n", st.Discarded)
	fmt.Printf("  Moved:     %d\n", st.Moved)
}

func printStatus(st kitchen.Status) {
	for _, t := range []struct {
		name string
		ts   kitchen.TierStatus
	}{
		{"Cooler", st.Cooler},
		{"Heater", st.Heater},
		{"Shelf", st.Shelf},
	} {
		fmt.Printf("  %s: %d/%d orders\n", t.name, t.ts.Count, t.ts.Capacity)
		for _, o := range t.ts.Orders {
			fmt.Printf("    - %s (%s)\n", o.Name, o.Temperature)
		}
	}
}
