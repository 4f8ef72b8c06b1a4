package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kitchend/internal/archive"
)

var runsDBFlag string

func init() {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Archived simulation runs",
	}
	runsCmd.PersistentFlags().StringVarP(&runsDBFlag, "db", "d", "", "Archive database path (default: $KITCHEND_ARCHIVE or ~/.kitchend/runs.db)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Run:   runRunsList,
	}
	listCmd.Flags().IntP("limit", "l", 20, "Maximum runs to list")

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show one archived run with its full ledger",
		Args:  cobra.ExactArgs(1),
		Run:   runRunsShow,
	}

	runsCmd.AddCommand(listCmd)
	runsCmd.AddCommand(showCmd)
	RootCmd.AddCommand(runsCmd)
}

func openArchive() *archive.Archive {
	a, err := archive.Open(getArchivePath(runsDBFlag))
	if err != nil {
		exitErr("open archive", err)
	}
	return a
}

func runRunsList(cmd *cobra.Command, args []string) {
	a := openArchive()
	defer a.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := a.ListRuns(cmd.Context(), limit)
	if err != nil {
		exitErr("list runs", err)
	}

	b, _ := json.MarshalIndent(runs, "", "  ")
	fmt.Println(string(b))
}

func runRunsShow(cmd *cobra.Command, args []string) {
	a := openArchive()
	defer a.Close()

	run, err := a.GetRun(cmd.Context(), args[0])
	if err != nil {
		exitErr("show run", err)
	}

	b, _ := json.MarshalIndent(run, "", "  ")
	fmt.Println(string(b))
}
