// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/xanmankey/WiiMix/internal/catalog"
	"github.com/xanmankey/WiiMix/internal/config"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"gopkg.in/yaml.v3"
)

// cliOptions are the persistent flags shared by every subcommand.
type cliOptions struct {
	configPath string
	logLevel   string
	logOutput  io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:           "wiimix",
		Short:         "Manage WiiMix settings files",
		Long:          "wiimix validates, converts and serves the settings files that configure Bingo, Shuffle and Rogue sessions.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logOutput = cmd.ErrOrStderr()
			configureLogging(opts.logOutput, opts.logLevel)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file (YAML)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(
		newValidateCmd(opts),
		newConvertCmd(),
		newModesCmd(),
		newCatalogCmd(opts),
		newServeCmd(opts),
	)
	return root
}

// configureLogging points the global logger at the command's error stream.
func configureLogging(w io.Writer, level string) {
	xglog.Reconfigure(xglog.Config{
		Level:   level,
		Output:  w,
		Service: "wiimix",
	})
}

func (o *cliOptions) loadConfig() (config.AppConfig, error) {
	cfg, err := config.NewLoader(o.configPath).Load()
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load configuration: %w", err)
	}
	if o.logLevel == "" {
		configureLogging(o.logOutput, cfg.LogLevel)
	}
	return cfg, nil
}

// lookup is the pair of catalogs a settings file is resolved against.
type lookup interface {
	catalog.GameCatalog
	catalog.ObjectiveCatalog
}

// openCatalog returns the fixture catalog when fixturePath is set and the
// configured SQLite catalog otherwise. The returned close func is never nil.
func (o *cliOptions) openCatalog(fixturePath string) (lookup, func(), error) {
	if fixturePath != "" {
		f, err := readFixture(fixturePath)
		if err != nil {
			return nil, func() {}, err
		}
		return catalog.NewMemoryFromFixture(f), func() {}, nil
	}

	store, err := openSQLiteCatalog(o)
	if err != nil {
		return nil, func() {}, err
	}
	return store, func() { _ = store.Close() }, nil
}

func readFixture(path string) (catalog.Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalog.Fixture{}, fmt.Errorf("open catalog fixture: %w", err)
	}
	defer func() { _ = f.Close() }()
	return catalog.ParseFixture(f)
}

// printYAML is used for human readable listings.
func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
