// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/xanmankey/WiiMix/internal/api"
	"github.com/xanmankey/WiiMix/internal/catalog"
	"github.com/xanmankey/WiiMix/internal/config"
	"github.com/xanmankey/WiiMix/internal/configstore"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/session"
	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/settingsfile"
	"github.com/xanmankey/WiiMix/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run a settings session and expose it over HTTP",
		Long: `Run a settings session backed by the configured store and catalog. When
settingsFile is configured the file is loaded at startup and reloaded
whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

type closableStore interface {
	configstore.Store
	Close() error
}

type memoryStore struct{ *configstore.MemoryStore }

func (memoryStore) Close() error { return nil }

func openStore(ctx context.Context, cfg config.AppConfig, reg *configstore.Registry) (closableStore, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		s, err := configstore.NewRedisStore(ctx, cfg.RedisStoreConfig(), reg)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return memoryStore{configstore.NewMemoryStore(reg)}, nil
	}
}

func serve(ctx context.Context, cfg config.AppConfig) error {
	logger := xglog.WithComponent("serve")

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    "wiimix",
		ServiceVersion: version,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Warn().Err(err).Str(xglog.FieldEvent, "telemetry.shutdown_failed").Msg("failed to flush traces")
		}
	}()

	reg, err := configstore.GetRegistry()
	if err != nil {
		return err
	}
	store, err := openStore(ctx, cfg, reg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() { _ = store.Close() }()

	cat, err := catalog.NewSQLiteStore(cfg.EffectiveCatalogPath())
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", cfg.EffectiveCatalogPath(), err)
	}
	defer func() { _ = cat.Close() }()

	var managerOpts []settingsfile.Option
	if cfg.GameSettingsDir != "" {
		managerOpts = append(managerOpts, settingsfile.WithGameSettingsDir(cfg.GameSettingsDir))
	}
	manager := settingsfile.NewManager(cat, cat, store, managerOpts...)

	sess := session.New(store,
		session.WithManager(manager),
		session.WithPublisher(store),
		session.WithObserver(logObserver{logger: xglog.WithComponent("session")}),
	)
	defer sess.Close()

	if cfg.SettingsFile != "" {
		// A broken file at startup is reported through the observer; the
		// watcher picks up the fix.
		_ = sess.Load(ctx, cfg.SettingsFile)
		if err := sess.WatchFile(ctx, cfg.SettingsFile); err != nil {
			return fmt.Errorf("watch settings file: %w", err)
		}
	}

	handler := api.New(api.Deps{Session: sess, Store: store, Registry: reg}, api.Options{
		RateLimitPerMinute: cfg.API.RateLimit,
		TracingService:     tracingService(cfg),
	}).Handler()
	srv := &http.Server{
		Addr:              cfg.API.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().
			Str(xglog.FieldEvent, "server.start").
			Str("addr", srv.Addr).
			Str("store", cfg.Store.Backend).
			Str(xglog.FieldSessionID, sess.ID()).
			Msg("serving settings session")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
		defer cancel()
		logger.Info().Str(xglog.FieldEvent, "server.shutdown").Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func tracingService(cfg config.AppConfig) string {
	if !cfg.Telemetry.Enabled {
		return ""
	}
	return "wiimix"
}

// logObserver reports session notifications to the log, standing in for a
// user interface.
type logObserver struct {
	logger zerolog.Logger
}

func (o logObserver) ModeChanged(m settings.Mode) {
	o.logger.Info().Str(xglog.FieldEvent, "session.mode_changed").Str(xglog.FieldMode, m.String()).Msg("mode changed")
}

func (o logObserver) StartBingo(b settings.BingoSettings) {
	o.logger.Info().
		Str(xglog.FieldEvent, "session.start").
		Str(xglog.FieldMode, b.Mode().String()).
		Int(xglog.FieldCardSize, b.CardSize()).
		Int("players", len(b.PlayerSlots())).
		Msg("bingo session ready")
}

func (o logObserver) StartShuffle(s settings.ShuffleSettings) {
	o.logger.Info().
		Str(xglog.FieldEvent, "session.start").
		Str(xglog.FieldMode, s.Mode().String()).
		Int("switches", s.NumberOfSwitches()).
		Bool("endless", s.Endless()).
		Msg("shuffle session ready")
}

func (o logObserver) StartRogue(r settings.RogueSettings) {
	o.logger.Info().
		Str(xglog.FieldEvent, "session.start").
		Str(xglog.FieldMode, r.Mode().String()).
		Msg("rogue session ready")
}

func (o logObserver) ErrorLoadingSettings(message string) {
	o.logger.Error().Str(xglog.FieldEvent, "settings.load_failed").Str("error", message).Msg("error loading settings")
}
