package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/mcgen"
)

func newBackgroundsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "backgrounds",
		Short: "List available backgrounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen, err := mcgen.NewGenerator(g.cfg, loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			for _, name := range gen.Backgrounds() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
