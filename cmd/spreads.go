package cmd

import (
	"github.com/spf13/cobra"

	"github.com/solevolog/solevolog/internal/render"
)

func newSpreadsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "spreads",
		Short: "List the available spreads and their positions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			render.New(cmd.OutOrStdout()).Spreads()
		},
	}
}
