// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xanmankey/WiiMix/internal/settings"
)

func newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the game modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tMODE\tDESCRIPTION")
			for _, m := range settings.Modes() {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", int(m), m, m.Description())
			}
			return tw.Flush()
		},
	}
}
