package kitchen

import "time"

// Standard tier capacities.
const (
	DefaultCoolerCapacity = 6
	DefaultHeaterCapacity = 6
	DefaultShelfCapacity  = 12
)

// Config controls a System's tier capacities and time source.
type Config struct {
	CoolerCapacity int
	HeaterCapacity int
	ShelfCapacity  int

	// Clock supplies the current time. Defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the standard 6/6/12 layout on the wall clock.
func DefaultConfig() Config {
	return Config{
		CoolerCapacity: DefaultCoolerCapacity,
		HeaterCapacity: DefaultHeaterCapacity,
		ShelfCapacity:  DefaultShelfCapacity,
	}
}
