package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kitchend/internal/archive"
	"kitchend/internal/client"
	"kitchend/internal/feed"
	"kitchend/internal/harness"
	"kitchend/internal/kitchen"
)

func init() {
	defaults := harness.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an in-process order simulation",
		Long:  "Run a simulated working day: orders placed at a fixed rate, pickups after random delays, periodic expiry sweeps. Prints the run summary as JSON.",
		Run:   runRun,
	}

	cmd.Flags().Float64("rate", defaults.Rate, "Orders placed per second")
	cmd.Flags().Int("count", defaults.Count, "Total orders to place")
	cmd.Flags().Duration("pickup-min", defaults.PickupMin, "Earliest pickup after placement")
	cmd.Flags().Duration("pickup-max", defaults.PickupMax, "Latest pickup after placement")
	cmd.Flags().Duration("sweep-interval", defaults.SweepInterval, "Expiry sweep interval")
	cmd.Flags().Int64("seed", 0, "Random seed for the order feed and pickup delays (0 = wall clock)")
	cmd.Flags().String("menu", "", "YAML menu file (default: built-in menu)")
	cmd.Flags().String("archive", "", "Record the run in this archive database ('default' = $KITCHEND_ARCHIVE or ~/.kitchend/runs.db)")
	cmd.Flags().String("submit", "", "Submit the run's actions to a challenge server at this URL")

	RootCmd.AddCommand(cmd)
}

func runRun(cmd *cobra.Command, args []string) {
	cfg := harness.Config{}
	cfg.Rate, _ = cmd.Flags().GetFloat64("rate")
	cfg.Count, _ = cmd.Flags().GetInt("count")
	cfg.PickupMin, _ = cmd.Flags().GetDuration("pickup-min")
	cfg.PickupMax, _ = cmd.Flags().GetDuration("pickup-max")
	cfg.SweepInterval, _ = cmd.Flags().GetDuration("sweep-interval")
	cfg.Seed, _ = cmd.Flags().GetInt64("seed")
	menuPath, _ := cmd.Flags().GetString("menu")
	archiveFlag, _ := cmd.Flags().GetString("archive")
	submitURL, _ := cmd.Flags().GetString("submit")

	log := newLogger(logLevel())
	defer log.Sync()

	menu := feed.DefaultMenu()
	if menuPath != "" {
		var err error
		if menu, err = feed.LoadMenu(menuPath); err != nil {
			exitErr("load menu", err)
		}
	}
	feedSeed := cfg.Seed
	if feedSeed == 0 {
		feedSeed = time.Now().UnixNano()
	}
	gen := feed.NewGenerator(menu, feedSeed)
	sys := kitchen.New(kitchen.DefaultConfig())

	h, err := harness.New(sys, gen, log, cfg)
	if err != nil {
		exitErr("run", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	sum, err := h.Run(ctx)
	finished := time.Now()
	if err != nil {
		log.Warn("run interrupted", zap.Error(err))
	}

	// The run context may already be canceled; archiving and submission
	// still have to finish.
	tail, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if archiveFlag != "" {
		path := archiveFlag
		if path == "default" {
			path = getArchivePath("")
		}
		a, err := archive.Open(path)
		if err != nil {
			exitErr("open archive", err)
		}
		defer a.Close()
		id, err := a.SaveRun(tail, archive.SaveRunParams{
			StartedAt:  started,
			FinishedAt: finished,
			Rate:       cfg.Rate,
			OrderCount: cfg.Count,
			Placed:     sum.Placed,
			Failed:     sum.Failed,
			PickedUp:   sum.PickedUp,
			Missed:     sum.Missed,
			Discarded:  sum.Stats.Discarded,
			Moved:      sum.Stats.Moved,
			Actions:    sum.Actions,
		})
		if err != nil {
			exitErr("archive run", err)
		}
		log.Info("run archived", zap.String("run", id), zap.String("path", path))
	}

	if submitURL != "" {
		res, err := client.New(submitURL).SubmitActions(tail, sum.Actions)
		if err != nil {
			exitErr("submit actions", err)
		}
		log.Info("actions submitted",
			zap.String("status", res.Status),
			zap.Int("count", res.ActionCount))
	}

	b, _ := json.MarshalIndent(sum, "", "  ")
	fmt.Println(string(b))
}
