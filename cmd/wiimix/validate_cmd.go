// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/settingsfile"
)

func newValidateCmd(opts *cliOptions) *cobra.Command {
	var fixture string

	cmd := &cobra.Command{
		Use:   "validate <settings.ini>",
		Short: "Check that a settings file loads",
		Long: `Load a settings file the way a session does: every required key must be
present and at least one listed game and objective must be known to the
catalog. Nothing is published.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, closeCat, err := opts.openCatalog(fixture)
			if err != nil {
				return err
			}
			defer closeCat()

			m := settingsfile.NewManager(cat, cat, nil)
			snap, err := m.Read(cmd.Context(), args[0], settingsfile.NewSnapshot(settings.Settings{}))
			if err != nil {
				return fmt.Errorf("invalid settings file %s: %w", args[0], err)
			}

			active := snap.Active()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "OK: %s\n", args[0])
			fmt.Fprintf(out, "  mode:       %s\n", active.Mode())
			fmt.Fprintf(out, "  difficulty: %s\n", snap.Common.Difficulty())
			fmt.Fprintf(out, "  games:      %d\n", len(snap.Common.GamesList()))
			fmt.Fprintf(out, "  objectives: %d\n", len(snap.Common.Objectives()))
			if err := active.Validate(); err != nil {
				fmt.Fprintf(out, "  warning:    %v\n", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fixture, "catalog", "", "resolve against a YAML catalog fixture instead of the SQLite catalog")
	return cmd
}
