// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/spf13/cobra"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/settingsfile"
)

func newConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <file.ini|file.json>",
		Short: "Convert between the INI settings file and the JSON document",
		Long: `An .ini input is written as the JSON document of its active mode; any other
input is read as a JSON document and written as an INI settings file.
Game and objective IDs are copied as they are, without a catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var converted []byte
			if strings.EqualFold(filepath.Ext(args[0]), settingsfile.Extension) {
				converted, err = iniToDocument(data)
			} else {
				converted, err = documentToINI(data)
			}
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(converted)
				return err
			}
			return renameio.WriteFile(output, converted, 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func iniToDocument(data []byte) ([]byte, error) {
	snap, ignored, err := settingsfile.Decode(data, settingsfile.NewSnapshot(settings.Settings{}))
	if err != nil {
		return nil, err
	}
	logger := xglog.WithComponent("convert")
	for _, ig := range ignored {
		logger.Warn().
			Str(xglog.FieldKey, ig.Key).
			Str(xglog.FieldValue, ig.Value).
			Msg("ignoring invalid value")
	}
	doc, err := settings.EncodeDocument(snap.Active())
	if err != nil {
		return nil, err
	}
	return append(doc, '\n'), nil
}

func documentToINI(data []byte) ([]byte, error) {
	doc, err := settings.DecodeDocument(data)
	if err != nil {
		return nil, err
	}
	snap := settingsfile.NewSnapshot(doc.Common())
	switch v := doc.(type) {
	case settings.BingoSettings:
		snap.Bingo = v
	case settings.ShuffleSettings:
		snap.Shuffle = v
	}
	return settingsfile.Encode(snap)
}
