// SPDX-License-Identifier: MIT

package settingsfile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
	"github.com/xanmankey/WiiMix/internal/catalog"
	"github.com/xanmankey/WiiMix/internal/configstore"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/metrics"
	"github.com/xanmankey/WiiMix/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("github.com/xanmankey/WiiMix/internal/settingsfile")

// Extension is appended to save paths that lack it.
const Extension = ".ini"

// Manager loads and saves settings files against the game and objective
// catalogs and mirrors successful operations into a configuration store.
type Manager struct {
	games           catalog.GameCatalog
	objectives      catalog.ObjectiveCatalog
	publisher       configstore.Publisher
	gameSettingsDir string
}

// Option configures a Manager.
type Option func(*Manager)

// WithGameSettingsDir sets the directory of per-game INI files consulted
// when saving settings with an empty games list.
func WithGameSettingsDir(dir string) Option {
	return func(m *Manager) { m.gameSettingsDir = dir }
}

// NewManager returns a Manager. publisher may be nil when nothing should be
// mirrored.
func NewManager(games catalog.GameCatalog, objectives catalog.ObjectiveCatalog, publisher configstore.Publisher, opts ...Option) *Manager {
	m := &Manager{
		games:      games,
		objectives: objectives,
		publisher:  publisher,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Read parses the file at path onto prior and resolves its games and
// objectives. Nothing is published; on error prior is untouched.
func (m *Manager) Read(ctx context.Context, path string, prior Snapshot) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "settingsfile.Read")
	defer span.End()
	logger := xglog.WithComponentFromContext(ctx, "settingsfile").With().Str(xglog.FieldPath, path).Logger()

	snap, err := m.read(ctx, logger, path, prior)
	if err != nil {
		telemetry.RecordError(span, err)
		span.SetAttributes(attribute.String(telemetry.SettingsPathKey, path))
		metrics.RecordSettingsLoad("unknown", false)
		logger.Warn().
			Err(err).
			Str(xglog.FieldEvent, "settings.load_failed").
			Msg("failed to load settings file")
		return Snapshot{}, err
	}

	span.SetAttributes(telemetry.SettingsAttributes(path, snap.Common.Mode().String(),
		len(snap.Common.GamesList()), len(snap.Common.Objectives()))...)
	metrics.RecordSettingsLoad(snap.Common.Mode().String(), true)
	logger.Info().
		Str(xglog.FieldEvent, "settings.loaded").
		Str(xglog.FieldMode, snap.Common.Mode().String()).
		Msg("settings file loaded")
	return snap, nil
}

func (m *Manager) read(ctx context.Context, logger zerolog.Logger, path string, prior Snapshot) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read settings file: %w", err)
	}

	snap, ignored, err := Decode(data, prior)
	if err != nil {
		return Snapshot{}, err
	}
	for _, ig := range ignored {
		if ig.Key == KeyCardSize {
			metrics.RecordCardSizeRejected()
		}
		logger.Warn().
			Str(xglog.FieldEvent, "settings.value_ignored").
			Str(xglog.FieldKey, ig.Key).
			Str(xglog.FieldValue, ig.Value).
			Msg("ignored invalid value, keeping previous")
	}

	games, unknownGames, err := catalog.ResolveGames(ctx, m.games, snap.Common.GameIDs())
	if err != nil {
		return Snapshot{}, err
	}
	for _, id := range unknownGames {
		logger.Warn().Str(xglog.FieldGameID, string(id)).Msg("game in settings file not found in game list")
	}
	if len(games) == 0 {
		return Snapshot{}, ErrNoGamesResolved
	}
	snap.Common.SetGamesList(games)

	objectives, unknownObjectives, err := catalog.ResolveObjectives(ctx, m.objectives, snap.Common.Objectives())
	if err != nil {
		return Snapshot{}, err
	}
	for _, id := range unknownObjectives {
		logger.Warn().Int(xglog.FieldObjective, int(id)).Msg("objective in settings file not found in objective list")
	}
	if len(objectives) == 0 {
		return Snapshot{}, ErrNoObjectivesResolved
	}
	snap.Common.SetObjectives(objectives)

	return snap, nil
}

// Load is Read followed by Publish.
func (m *Manager) Load(ctx context.Context, path string, prior Snapshot) (Snapshot, error) {
	snap, err := m.Read(ctx, path, prior)
	if err != nil {
		return Snapshot{}, err
	}
	m.Publish(snap)
	return snap, nil
}

// Publish mirrors snap into the configuration store, if one is configured.
func (m *Manager) Publish(snap Snapshot) {
	if m.publisher == nil {
		return
	}
	Publish(m.publisher, snap)
}

// SaveResult describes a completed save.
type SaveResult struct {
	Path     string   // final path, with Extension appended if it was missing
	Snapshot Snapshot // what was written, including discovered games
}

// Save writes snap to path atomically and publishes it. When snap has no
// games, the games enabled in the game settings directory are used instead.
func (m *Manager) Save(ctx context.Context, path string, snap Snapshot) (SaveResult, error) {
	ctx, span := tracer.Start(ctx, "settingsfile.Save")
	defer span.End()
	logger := xglog.WithComponentFromContext(ctx, "settingsfile")
	mode := snap.Common.Mode().String()

	res, err := m.save(ctx, logger, path, snap)
	if err != nil {
		telemetry.RecordError(span, err)
		metrics.RecordSettingsSave(mode, false)
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "settings.save_failed").
			Str(xglog.FieldPath, path).
			Msg("failed to save settings file")
		return SaveResult{}, err
	}

	span.SetAttributes(telemetry.SettingsAttributes(res.Path, mode,
		len(res.Snapshot.Common.GamesList()), len(res.Snapshot.Common.Objectives()))...)
	metrics.RecordSettingsSave(mode, true)
	m.Publish(res.Snapshot)
	logger.Info().
		Str(xglog.FieldEvent, "settings.saved").
		Str(xglog.FieldPath, res.Path).
		Str(xglog.FieldMode, mode).
		Msg("settings file saved")
	return res, nil
}

func (m *Manager) save(ctx context.Context, logger zerolog.Logger, path string, snap Snapshot) (SaveResult, error) {
	if strings.TrimSpace(path) == "" {
		return SaveResult{}, fmt.Errorf("save settings: empty path")
	}
	if !strings.HasSuffix(strings.ToLower(path), Extension) {
		path += Extension
	}

	snap = snap.Clone()
	if len(snap.Common.GameIDs()) == 0 && m.gameSettingsDir != "" {
		games, err := catalog.DiscoverEnabledGames(ctx, m.gameSettingsDir, m.games)
		if err != nil {
			return SaveResult{}, err
		}
		snap.Common.SetGamesList(games)
	}
	if len(snap.Common.Objectives()) == 0 {
		logger.Warn().
			Str(xglog.FieldEvent, "settings.no_objectives").
			Msg("saving settings without objectives; the file will not load until objectives are added")
	}

	data, err := Encode(snap)
	if err != nil {
		return SaveResult{}, err
	}
	if err := writeFile(ctx, path, data); err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Path: path, Snapshot: snap}, nil
}

// writeFile replaces path atomically: temp file, fsync, rename.
func writeFile(ctx context.Context, path string, data []byte) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644), renameio.WithExistingPermissions())
	if err != nil {
		return fmt.Errorf("create pending settings file: %w", err)
	}
	defer func() {
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending settings file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write settings data: %w", err)
	}

	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace settings file: %w", err)
	}
	return nil
}
