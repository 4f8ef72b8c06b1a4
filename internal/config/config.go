// Package config loads kitchend settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server holds the settings for the kitchend HTTP server.
type Server struct {
	Addr          string        `env:"KITCHEND_ADDR" envDefault:":8080"`
	SweepInterval time.Duration `env:"KITCHEND_SWEEP_INTERVAL" envDefault:"1s"`
	MenuPath      string        `env:"KITCHEND_MENU"`
	LogLevel      string        `env:"KITCHEND_LOG_LEVEL" envDefault:"info"`
}

// LoadServer reads server settings from the environment, falling back
// to defaults for anything unset.
func LoadServer() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
