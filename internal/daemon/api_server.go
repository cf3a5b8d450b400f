package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"scriptparse/internal/api"
	"scriptparse/internal/archive"
	"scriptparse/internal/config"
	"scriptparse/internal/fixture"
	"scriptparse/internal/logging"
	"scriptparse/internal/script"
)

const (
	defaultRunListLimit = 50
	maxRunListLimit     = 500
)

type apiServer struct {
	bind        string
	token       string
	maxBody     int64
	fixturePath string
	logger      *slog.Logger
	daemon      *Daemon

	mux *http.ServeMux

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:        strings.TrimSpace(cfg.Server.Bind),
		token:       strings.TrimSpace(cfg.Server.APIToken),
		maxBody:     cfg.Server.MaxBodyBytes,
		fixturePath: cfg.Paths.FixturePath,
		logger:      logging.NewComponentLogger(logger, "api-server"),
		daemon:      d,
	}

	mux := http.NewServeMux()
	srv.route(mux, "/", srv.handleSubmit)
	srv.route(mux, "/test/", srv.handleFixture)
	srv.route(mux, "/healthz", srv.handleHealth)
	srv.route(mux, "/api/status", srv.requireToken(srv.handleStatus))
	srv.route(mux, "/api/runs", srv.requireToken(srv.handleRuns))
	srv.route(mux, "/api/runs/", srv.requireToken(srv.handleRun))
	mux.Handle("/metrics", srv.instrument("/metrics", d.metrics.Handler()))

	srv.mux = mux
	return srv
}

func (s *apiServer) route(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.instrument(pattern, h))
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	server := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	s.mu.Lock()
	s.listener = listener
	s.server = server
	s.mu.Unlock()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	s.mu.Lock()
	server, listener := s.server, s.listener
	s.server, s.listener = nil, nil
	s.mu.Unlock()

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn("api server shutdown incomplete", logging.Error(err))
		}
	}
	if listener != nil {
		_ = listener.Close()
	}
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	lines, err := api.DecodeLines(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		case errors.Is(err, script.ErrContract):
			s.daemon.processor.ContractError(r.Context(), archive.SourceSubmit, err)
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	s.process(w, r, archive.SourceSubmit, lines)
}

func (s *apiServer) handleFixture(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/test/" {
		s.writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	lines, err := fixture.Load(s.fixturePath)
	if err != nil {
		logger := logging.WithContext(r.Context(), s.logger)
		switch {
		case errors.Is(err, fixture.ErrNotFound):
			logger.Warn("fixture missing", logging.String("path", s.fixturePath))
			s.writeError(w, http.StatusNotFound, "fixture not found")
		case errors.Is(err, fixture.ErrMalformed):
			s.daemon.processor.ContractError(r.Context(), archive.SourceFixture, err)
			logger.Error("fixture malformed", logging.String("path", s.fixturePath), logging.Error(err))
			s.writeError(w, http.StatusInternalServerError, "malformed fixture")
		default:
			logger.Error("fixture unreadable", logging.String("path", s.fixturePath), logging.Error(err))
			s.writeError(w, http.StatusInternalServerError, "fixture unreadable")
		}
		return
	}
	s.process(w, r, archive.SourceFixture, lines)
}

func (s *apiServer) process(w http.ResponseWriter, r *http.Request, source archive.Source, lines []string) {
	result, err := s.daemon.processor.Process(r.Context(), source, lines)
	if err != nil {
		logging.WithContext(r.Context(), s.logger).Error("parse failed", logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "parse failed")
		return
	}
	if result.RunID != "" {
		w.Header().Set("X-Run-ID", result.RunID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(result.Body); err != nil {
		logging.WithContext(r.Context(), s.logger).Debug("response write failed", logging.Error(err))
	}
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := s.daemon.Status(r.Context())
	payload := api.ServerStatus{
		Running:        status.Running,
		PID:            status.PID,
		Address:        status.Address,
		StartedAt:      api.FormatTime(status.StartedAt),
		LockFilePath:   status.LockFilePath,
		ArchiveEnabled: s.daemon.store != nil,
		ArchivePath:    status.ArchivePath,
		ArchivedRuns:   status.ArchivedRuns,
	}
	if !status.StartedAt.IsZero() {
		payload.UptimeSeconds = int64(time.Since(status.StartedAt).Seconds())
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *apiServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	store := s.daemon.store
	if store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "run archive disabled")
		return
	}
	limit := defaultRunListLimit
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = min(parsed, maxRunListLimit)
	}
	runs, err := store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromRuns(runs))
}

func (s *apiServer) handleRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	store := s.daemon.store
	if store == nil {
		s.writeError(w, http.StatusServiceUnavailable, "run archive disabled")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/runs/")
	if id == "" || strings.Contains(id, "/") {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	run, err := store.Get(r.Context(), id)
	if errors.Is(err, archive.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, api.FromRunDetail(run))
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
