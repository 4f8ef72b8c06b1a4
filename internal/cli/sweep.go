package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Trigger an expiry sweep",
		Run:   runSweep,
	}

	RootCmd.AddCommand(cmd)
}

func runSweep(cmd *cobra.Command, args []string) {
	removed, err := apiClient().Sweep(cmd.Context())
	if err != nil {
		exitErr("sweep", err)
	}

	b, _ := json.Marshal(map[string]int{"removed": removed})
	fmt.Println(string(b))
}
