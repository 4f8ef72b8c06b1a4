package kitchen

import (
	"fmt"
	"strings"
)

// Temperature is the storage class an order is meant to be kept at.
type Temperature string

const (
	TempHot  Temperature = "hot"
	TempCold Temperature = "cold"
	TempRoom Temperature = "room"
)

// ParseTemperature normalizes and validates a temperature string.
func ParseTemperature(s string) (Temperature, error) {
	switch t := Temperature(strings.ToLower(s)); t {
	case TempHot, TempCold, TempRoom:
		return t, nil
	}
	return "", fmt.Errorf("unknown temperature %q", s)
}

// Location identifies one of the storage tiers.
type Location string

const (
	LocCooler Location = "cooler"
	LocHeater Location = "heater"
	LocShelf  Location = "shelf"

	// LocNone marks an order that is not stored in any tier.
	LocNone Location = ""
)

// IdealLocation returns the tier where orders of this class keep for their
// full freshness window: the cooler for cold, the heater for hot, the
// shelf for room temperature.
func (t Temperature) IdealLocation() Location {
	switch t {
	case TempCold:
		return LocCooler
	case TempHot:
		return LocHeater
	default:
		return LocShelf
	}
}
