// SPDX-License-Identifier: MIT

// Package session drives a WiiMix settings session: mode selection, edits
// to the per-mode drafts, commit, and loading or saving settings files.
//
// A session moves Uninitialized -> ModeSelected -> Configuring and from
// there to Committed, Loaded or Saved. A failed load returns it to
// Configuring with the previous settings intact.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xanmankey/WiiMix/internal/configstore"
	xglog "github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/metrics"
	"github.com/xanmankey/WiiMix/internal/settings"
	"github.com/xanmankey/WiiMix/internal/settingsfile"
	"github.com/xanmankey/WiiMix/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("github.com/xanmankey/WiiMix/internal/session")

var (
	// ErrNoModeSelected is returned by operations that need a mode first.
	ErrNoModeSelected = errors.New("no mode selected")
	// ErrNoManager is returned by file operations on a session without a
	// settings file manager.
	ErrNoManager = errors.New("session has no settings file manager")
	// ErrInvalidMode is returned by SelectMode for an unknown mode code.
	ErrInvalidMode = errors.New("invalid mode")
)

// Session is safe for concurrent use.
type Session struct {
	id        string
	manager   *settingsfile.Manager
	publisher configstore.Publisher
	observer  Observer
	debounce  time.Duration
	logger    zerolog.Logger

	mu      sync.Mutex
	state   State
	snap    settingsfile.Snapshot
	path    string
	watcher *settingsfile.Watcher
}

// Option configures a Session.
type Option func(*Session)

// WithObserver sets the notification receiver.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithManager enables Load, Save and WatchFile.
func WithManager(m *settingsfile.Manager) Option {
	return func(s *Session) { s.manager = m }
}

// WithPublisher sets where committed settings are mirrored.
func WithPublisher(p configstore.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

// WithWatchDebounce overrides the file watcher's debounce window.
func WithWatchDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// New returns an uninitialized session whose settings start from the values
// in defaults. defaults is read once, here.
func New(defaults configstore.Reader, opts ...Option) *Session {
	s := &Session{
		id:       uuid.NewString(),
		observer: NopObserver{},
		snap:     snapshotFromStore(defaults),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.observer == nil {
		s.observer = NopObserver{}
	}
	s.logger = xglog.WithComponent("session").With().Str(xglog.FieldSessionID, s.id).Logger()
	return s
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the shared settings and all drafts.
func (s *Session) Snapshot() settingsfile.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Active returns the variant selected by the current mode.
func (s *Session) Active() settings.ModeSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Active()
}

// Path returns the file last loaded or saved, if any.
func (s *Session) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// SelectMode chooses the mode and moves to ModeSelected. It may be called in
// any state; the drafts of other modes are kept.
func (s *Session) SelectMode(mode settings.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}

	s.mu.Lock()
	s.snap.Common.SetMode(mode)
	s.transition(StateModeSelected)
	s.mu.Unlock()

	s.observer.ModeChanged(mode)
	return nil
}

// UpdateCommon edits the shared settings. The mode cannot be changed here;
// use SelectMode.
func (s *Session) UpdateCommon(fn func(*settings.Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasMode() {
		return ErrNoModeSelected
	}

	c := s.snap.Common.Clone()
	fn(&c)
	c.SetMode(s.snap.Common.Mode())
	s.snap.Common = c
	s.transition(StateConfiguring)
	return nil
}

// UpdateBingo edits the bingo draft.
func (s *Session) UpdateBingo(fn func(*settings.BingoSettings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasMode() {
		return ErrNoModeSelected
	}

	b := s.snap.Bingo.Clone()
	fn(&b)
	s.snap.Bingo = b
	s.transition(StateConfiguring)
	return nil
}

// UpdateShuffle edits the shuffle draft.
func (s *Session) UpdateShuffle(fn func(*settings.ShuffleSettings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.HasMode() {
		return ErrNoModeSelected
	}

	sh := s.snap.Shuffle.Clone()
	fn(&sh)
	s.snap.Shuffle = sh
	s.transition(StateConfiguring)
	return nil
}

// ApplyDocument replaces the shared settings and the matching draft with a
// structured document, selecting the document's mode.
func (s *Session) ApplyDocument(data []byte) error {
	doc, err := settings.DecodeDocument(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	prevMode := s.snap.Common.Mode()
	s.snap.Common = doc.Common()
	switch v := doc.(type) {
	case settings.BingoSettings:
		s.snap.Bingo = v.Clone()
	case settings.ShuffleSettings:
		s.snap.Shuffle = v.Clone()
	}
	s.transition(StateConfiguring)
	mode := s.snap.Common.Mode()
	s.mu.Unlock()

	if mode != prevMode {
		s.observer.ModeChanged(mode)
	}
	return nil
}

// Commit validates the active variant, publishes it and starts the mode.
// A bingo session without a seed gets a random one.
func (s *Session) Commit(ctx context.Context) (settings.ModeSettings, error) {
	ctx, span := tracer.Start(ctx, "session.Commit")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.SessionIDKey, s.id))

	s.mu.Lock()
	if !s.state.HasMode() {
		s.mu.Unlock()
		return nil, ErrNoModeSelected
	}

	if s.snap.Common.Mode() == settings.ModeBingo && s.snap.Bingo.Seed() == "" {
		s.snap.Bingo.SetSeed(uuid.NewString())
	}
	active := s.snap.Active()
	if err := active.Validate(); err != nil {
		s.mu.Unlock()
		err = fmt.Errorf("commit %s settings: %w", active.Mode(), err)
		telemetry.RecordError(span, err)
		return nil, err
	}
	if s.publisher != nil {
		settingsfile.Publish(s.publisher, s.snap)
	}
	s.transition(StateCommitted)
	s.mu.Unlock()

	span.SetAttributes(attribute.String(telemetry.SettingsModeKey, active.Mode().String()))
	logger := xglog.WithContext(ctx, s.logger)
	logger.Info().
		Str(xglog.FieldEvent, "session.committed").
		Str(xglog.FieldMode, active.Mode().String()).
		Msg("settings committed")

	switch v := active.(type) {
	case settings.BingoSettings:
		s.observer.StartBingo(v.Clone())
	case settings.ShuffleSettings:
		s.observer.StartShuffle(v.Clone())
	case settings.RogueSettings:
		s.observer.StartRogue(v.Clone())
	}
	return active, nil
}

// Load reads path and, if it parses and resolves, replaces the session's
// settings and publishes them. On failure the settings are untouched, the
// session returns to Configuring and the observer is told why.
func (s *Session) Load(ctx context.Context, path string) error {
	if s.manager == nil {
		return ErrNoManager
	}
	ctx, span := tracer.Start(ctx, "session.Load")
	defer span.End()
	span.SetAttributes(attribute.String(telemetry.SessionIDKey, s.id))

	s.mu.Lock()
	prior := s.snap.Clone()
	s.mu.Unlock()

	loaded, err := s.manager.Read(ctx, path, prior)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.transition(StateConfiguring)
		s.mu.Unlock()
		s.observer.ErrorLoadingSettings(err.Error())
		telemetry.RecordError(span, err)
		return err
	}

	s.mu.Lock()
	prevMode := s.snap.Common.Mode()
	s.snap = loaded
	s.path = path
	s.transition(StateLoaded)
	mode := s.snap.Common.Mode()
	s.mu.Unlock()

	s.manager.Publish(loaded)
	if mode != prevMode {
		s.observer.ModeChanged(mode)
	}
	return nil
}

// Save writes the current settings to path (".ini" is appended if missing)
// and returns the final path.
func (s *Session) Save(ctx context.Context, path string) (string, error) {
	if s.manager == nil {
		return "", ErrNoManager
	}

	s.mu.Lock()
	if !s.state.HasMode() {
		s.mu.Unlock()
		return "", ErrNoModeSelected
	}
	snap := s.snap.Clone()
	s.mu.Unlock()

	res, err := s.manager.Save(ctx, path, snap)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	// Pick up games filled in from the game settings directory.
	s.snap.Common.SetGamesList(res.Snapshot.Common.GamesList())
	s.path = res.Path
	s.transition(StateSaved)
	s.mu.Unlock()
	return res.Path, nil
}

// WatchFile reloads the session whenever path changes on disk. A previous
// watch is replaced.
func (s *Session) WatchFile(ctx context.Context, path string) error {
	if s.manager == nil {
		return ErrNoManager
	}

	w := settingsfile.NewWatcher(path, s.debounce, func(ctx context.Context, p string) {
		if err := s.Load(ctx, p); err != nil {
			s.logger.Warn().
				Err(err).
				Str(xglog.FieldEvent, "session.reload_failed").
				Str(xglog.FieldPath, p).
				Msg("settings file changed but could not be loaded")
		}
	})
	if err := w.Start(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	prev := s.watcher
	s.watcher = w
	s.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
	return nil
}

// Close stops the file watcher, if any.
func (s *Session) Close() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		w.Stop()
	}
}

// transition must be called with mu held.
func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	metrics.RecordSessionTransition(to.String())
	s.logger.Debug().
		Str(xglog.FieldEvent, "session.transition").
		Str(xglog.FieldOldState, from.String()).
		Str(xglog.FieldNewState, to.String()).
		Msg("session state changed")
}
