package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how much the engine has learned",
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := deps.Store.Load(cmd.Context())

			fmt.Fprintf(cmd.OutOrStdout(), "states: %d\ntransitions: %d\n", table.Len(), table.Transitions())

			return nil
		},
	}
}
