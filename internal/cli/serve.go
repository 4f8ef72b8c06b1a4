package cli

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kitchend/internal/config"
	"kitchend/internal/feed"
	"kitchend/internal/httpserver"
	"kitchend/internal/kitchen"
	"kitchend/internal/sweeper"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the kitchen storage server",
		Long:  "Run the HTTP server with a background expiry sweeper. Settings come from KITCHEND_* env vars; flags override.",
		Run:   runServe,
	}

	cmd.Flags().String("listen", "", "Listen address (overrides $KITCHEND_ADDR)")
	cmd.Flags().String("menu", "", "YAML menu file for the challenge feed (overrides $KITCHEND_MENU)")
	cmd.Flags().Duration("sweep-interval", 0, "Expiry sweep interval (overrides $KITCHEND_SWEEP_INTERVAL)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.LoadServer()
	if err != nil {
		exitErr("load config", err)
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.Addr = v
	}
	if v, _ := cmd.Flags().GetString("menu"); v != "" {
		cfg.MenuPath = v
	}
	if v, _ := cmd.Flags().GetDuration("sweep-interval"); v > 0 {
		cfg.SweepInterval = v
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}

	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	menu := feed.DefaultMenu()
	if cfg.MenuPath != "" {
		if menu, err = feed.LoadMenu(cfg.MenuPath); err != nil {
			exitErr("load menu", err)
		}
	}
	gen := feed.NewGenerator(menu, time.Now().UnixNano())
	sys := kitchen.New(kitchen.DefaultConfig())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go sweeper.Run(ctx, sys, cfg.SweepInterval, log.Named("sweeper"))

	srv := httpserver.New(cfg.Addr, sys, gen, log)
	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitErr("serve", err)
	}
}
