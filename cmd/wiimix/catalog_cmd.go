// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xanmankey/WiiMix/internal/catalog"
	xglog "github.com/xanmankey/WiiMix/internal/log"
)

func newCatalogCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the game and objective catalog",
	}
	cmd.AddCommand(newCatalogImportCmd(opts), newCatalogListCmd(opts))
	return cmd
}

func openSQLiteCatalog(opts *cliOptions) (*catalog.SQLiteStore, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := catalog.NewSQLiteStore(cfg.EffectiveCatalogPath())
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", cfg.EffectiveCatalogPath(), err)
	}
	return store, nil
}

func newCatalogImportCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <catalog.yaml>",
		Short: "Import games and objectives from a YAML fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readFixture(args[0])
			if err != nil {
				return err
			}
			store, err := openSQLiteCatalog(opts)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			games, objectives, err := store.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			logger := xglog.WithComponent("catalog")
			logger.Info().
				Str(xglog.FieldEvent, "catalog.imported").
				Str(xglog.FieldPath, args[0]).
				Int("games", games).
				Int("objectives", objectives).
				Msg("catalog imported")
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d games and %d objectives\n", games, objectives)
			return nil
		},
	}
}

type catalogListing struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Path       string   `yaml:"path"`
	Objectives []string `yaml:"objectives,omitempty"`
}

func newCatalogListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the catalog's games and their objectives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openSQLiteCatalog(opts)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			games, err := store.Games(cmd.Context())
			if err != nil {
				return err
			}
			listing := make([]catalogListing, 0, len(games))
			for _, g := range games {
				objectives, err := store.ObjectivesForGame(cmd.Context(), g.ID)
				if err != nil {
					return err
				}
				entry := catalogListing{ID: string(g.ID), Title: g.Title, Path: g.Path}
				for _, o := range objectives {
					entry.Objectives = append(entry.Objectives, fmt.Sprintf("%d: %s", o.ID, o.Title))
				}
				listing = append(listing, entry)
			}
			return printYAML(cmd.OutOrStdout(), listing)
		},
	}
}
