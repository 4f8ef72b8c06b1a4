package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Dump the full action ledger",
		Run:   runLedger,
	}

	RootCmd.AddCommand(cmd)
}

func runLedger(cmd *cobra.Command, args []string) {
	actions, err := apiClient().Ledger(cmd.Context())
	if err != nil {
		exitErr("ledger", err)
	}

	b, _ := json.MarshalIndent(actions, "", "  ")
	fmt.Println(string(b))
}
