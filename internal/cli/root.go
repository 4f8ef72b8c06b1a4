// Package cli implements the kitchend CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kitchend/internal/client"
)

var (
	addrFlag     string
	logLevelFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "kitchend",
	Short: "Tiered storage for perishable orders",
	Long:  "A cloud kitchen storage daemon: cooler, heater, and overflow shelf with freshness-aware eviction, an append-only action ledger, and an HTTP API.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&addrFlag, "addr", "a", "", "Server base URL for client commands (default: $KITCHEND_URL or http://localhost:8080)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error (default: $KITCHEND_LOG_LEVEL or info)")
}

func serverURL() string {
	if addrFlag != "" {
		return addrFlag
	}
	if env := os.Getenv("KITCHEND_URL"); env != "" {
		return env
	}
	return "http://localhost:8080"
}

func apiClient() *client.Client {
	return client.New(serverURL())
}

func logLevel() string {
	if logLevelFlag != "" {
		return logLevelFlag
	}
	if env := os.Getenv("KITCHEND_LOG_LEVEL"); env != "" {
		return env
	}
	return "info"
}

// newLogger builds a development logger to stderr so stdout stays free
// for data output.
func newLogger(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		exitErr("log level", err)
	}
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		exitErr("build logger", err)
	}
	return log
}

func getArchivePath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("KITCHEND_ARCHIVE"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".kitchend", "runs.db")
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
