// SPDX-License-Identifier: MIT

// Package api serves a read-only view of the running settings session and
// of the values published to the configuration store.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xanmankey/WiiMix/internal/api/middleware"
	"github.com/xanmankey/WiiMix/internal/configstore"
	"github.com/xanmankey/WiiMix/internal/log"
	"github.com/xanmankey/WiiMix/internal/session"
	"github.com/xanmankey/WiiMix/internal/settings"
)

// HealthChecker is implemented by stores with a remote backend.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Deps are the collaborators the server reads from.
type Deps struct {
	Session  *session.Session
	Store    configstore.Store
	Registry *configstore.Registry
}

// Options tune the HTTP stack.
type Options struct {
	RateLimitPerMinute int
	// TracingService enables request spans under this service name.
	TracingService string
}

// Server exposes the session over HTTP.
type Server struct {
	deps   Deps
	router *chi.Mux
}

// New builds the server and its routes.
func New(deps Deps, opts Options) *Server {
	if deps.Registry == nil {
		deps.Registry = configstore.MustRegistry()
	}
	s := &Server{deps: deps}
	s.router = middleware.NewRouter(middleware.StackConfig{
		EnableSecurityHeaders: true,
		EnableMetrics:         true,
		RateLimitPerMinute:    opts.RateLimitPerMinute,
		TracingService:        opts.TracingService,
	})
	s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/session", s.handleSession)
		r.Get("/settings", s.handleSettings)
		r.Get("/config", s.handleConfig)
		r.Get("/modes", s.handleModes)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if hc, ok := s.deps.Store.(HealthChecker); ok {
		if err := hc.HealthCheck(r.Context()); err != nil {
			logger := log.WithComponentFromContext(r.Context(), "api")
			logger.Warn().
				Err(err).
				Str(log.FieldEvent, "health.store_unavailable").
				Msg("configuration store health check failed")
			writeError(w, r, http.StatusServiceUnavailable, "store_unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type sessionResponse struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Mode  string `json:"mode"`
	Path  string `json:"path,omitempty"`
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.deps.Session
	writeJSON(w, http.StatusOK, sessionResponse{
		ID:    sess.ID(),
		State: sess.State().String(),
		Mode:  sess.Active().Mode().String(),
		Path:  sess.Path(),
	})
}

// handleSettings writes the active variant as a structured document. The
// lobby password is blanked.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	active := s.deps.Session.Active()
	if b, ok := active.(settings.BingoSettings); ok && b.LobbyPassword() != "" {
		b.SetLobbyPassword("")
		active = b
	}

	data, err := settings.EncodeDocument(active)
	if err != nil {
		logger := log.WithComponentFromContext(r.Context(), "api")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, "settings.encode_failed").
			Msg("failed to encode settings document")
		writeError(w, r, http.StatusInternalServerError, "encode_failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if s.deps.Store == nil {
		writeError(w, r, http.StatusNotFound, "no_store")
		return
	}
	writeJSON(w, http.StatusOK, configstore.Redacted(s.deps.Registry, s.deps.Store.Snapshot()))
}

type modeResponse struct {
	Code        int    `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	modes := settings.Modes()
	out := make([]modeResponse, 0, len(modes))
	for _, m := range modes {
		out = append(out, modeResponse{Code: int(m), Title: m.String(), Description: m.Description()})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	body := map[string]string{"error": code}
	if rid := log.RequestIDFromContext(r.Context()); rid != "" {
		body["requestId"] = rid
	}
	writeJSON(w, status, body)
}
