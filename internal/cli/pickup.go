package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "pickup [id]",
		Short: "Pick up an order from a running server",
		Args:  cobra.ExactArgs(1),
		Run:   runPickup,
	}

	RootCmd.AddCommand(cmd)
}

func runPickup(cmd *cobra.Command, args []string) {
	o, err := apiClient().Pickup(cmd.Context(), args[0])
	if err != nil {
		exitErr("pickup", err)
	}

	b, _ := json.Marshal(o)
	fmt.Println(string(b))
}
