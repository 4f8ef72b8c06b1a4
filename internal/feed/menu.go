// Package feed supplies the orders the kitchen stores: a menu of dishes
// with freshness windows and a seeded generator producing order streams
// from it.
package feed

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"kitchend/internal/kitchen"
)

// MenuItem describes one orderable dish and how long it keeps.
type MenuItem struct {
	Name             string              `yaml:"name" json:"name"`
	Temperature      kitchen.Temperature `yaml:"temperature" json:"temperature"`
	FreshnessSeconds int                 `yaml:"freshness_seconds" json:"freshness_seconds"`
}

// DefaultMenu returns the built-in ten-dish menu.
func DefaultMenu() []MenuItem {
	return []MenuItem{
		{Name: "Cheese Pizza", Temperature: kitchen.TempHot, FreshnessSeconds: 300},
		{Name: "Caesar Salad", Temperature: kitchen.TempCold, FreshnessSeconds: 600},
		{Name: "Chicken Wings", Temperature: kitchen.TempHot, FreshnessSeconds: 450},
		{Name: "Ice Cream", Temperature: kitchen.TempCold, FreshnessSeconds: 900},
		{Name: "Sandwich", Temperature: kitchen.TempRoom, FreshnessSeconds: 1200},
		{Name: "Soup", Temperature: kitchen.TempHot, FreshnessSeconds: 600},
		{Name: "Sushi", Temperature: kitchen.TempCold, FreshnessSeconds: 300},
		{Name: "Bread", Temperature: kitchen.TempRoom, FreshnessSeconds: 1800},
		{Name: "Steak", Temperature: kitchen.TempHot, FreshnessSeconds: 480},
		{Name: "Milk", Temperature: kitchen.TempCold, FreshnessSeconds: 720},
	}
}

// LoadMenu reads and validates a YAML menu file: a list of entries with
// name, temperature, and freshness_seconds.
func LoadMenu(path string) ([]MenuItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu: %w", err)
	}
	var menu []MenuItem
	if err := yaml.Unmarshal(b, &menu); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	if err := validateMenu(menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func validateMenu(menu []MenuItem) error {
	if len(menu) == 0 {
		return errors.New("menu is empty")
	}
	for i, m := range menu {
		if m.Name == "" {
			return fmt.Errorf("menu item %d: empty name", i)
		}
		if _, err := kitchen.ParseTemperature(string(m.Temperature)); err != nil {
			return fmt.Errorf("menu item %q: %v", m.Name, err)
		}
		if m.FreshnessSeconds <= 0 {
			return fmt.Errorf("menu item %q: freshness must be positive", m.Name)
		}
	}
	return nil
}
