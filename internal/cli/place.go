package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"kitchend/internal/feed"
	"kitchend/internal/kitchen"
)

func init() {
	cmd := &cobra.Command{
		Use:   "place",
		Short: "Place an order on a running server",
		Run:   runPlace,
	}

	cmd.Flags().StringP("id", "i", "", "Order id (required)")
	cmd.Flags().StringP("name", "n", "", "Order name (required)")
	cmd.Flags().StringP("temp", "t", "", "Temperature: hot, cold, room (required)")
	cmd.Flags().Int("freshness", 0, "Freshness window in seconds (required)")

	cmd.MarkFlagRequired("id")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("temp")
	cmd.MarkFlagRequired("freshness")

	RootCmd.AddCommand(cmd)
}

func runPlace(cmd *cobra.Command, args []string) {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	temp, _ := cmd.Flags().GetString("temp")
	freshness, _ := cmd.Flags().GetInt("freshness")

	placed, err := apiClient().Place(cmd.Context(), feed.Order{
		ID:               id,
		Name:             name,
		Temperature:      kitchen.Temperature(temp),
		FreshnessSeconds: freshness,
	})
	if err != nil {
		exitErr("place", err)
	}

	b, _ := json.Marshal(map[string]any{"id": id, "placed": placed})
	fmt.Println(string(b))
}
