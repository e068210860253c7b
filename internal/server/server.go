package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/deckpeek/deckpeek/internal/converter"
	"github.com/deckpeek/deckpeek/internal/scratch"
	"github.com/deckpeek/deckpeek/internal/session"
)

// Server hosts the display-surface endpoints: a websocket session channel,
// converted-artifact serving out of the scratch directory, and health probes
type Server struct {
	config   Config
	scratch  *scratch.Dir
	pipeline *converter.Pipeline
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a preview server with the given configuration
func NewServer(cfg Config, logger *slog.Logger) (*Server, error) {
	ctx := context.Background()

	probeTimeout, err := time.ParseDuration(cfg.ProbeTimeout)
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse probe timeout",
			"error", err,
			"timeout", cfg.ProbeTimeout,
		)
		return nil, fmt.Errorf("parse probe timeout: %w", err)
	}
	convertTimeout, err := time.ParseDuration(cfg.ConvertTimeout)
	if err != nil {
		logger.ErrorContext(ctx, "failed to parse convert timeout",
			"error", err,
			"timeout", cfg.ConvertTimeout,
		)
		return nil, fmt.Errorf("parse convert timeout: %w", err)
	}

	dir, err := scratch.New(scratch.Config{
		Root:   cfg.ScratchRoot,
		Logger: logger,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to initialize scratch directory",
			"error", err,
		)
		return nil, fmt.Errorf("scratch init: %w", err)
	}

	pipeline := converter.NewPipeline(converter.Config{
		Binary:         cfg.SofficePath,
		Scratch:        dir,
		ProbeTimeout:   probeTimeout,
		ConvertTimeout: convertTimeout,
		Logger:         logger,
	})

	return &Server{
		config:   cfg,
		scratch:  dir,
		pipeline: pipeline,
		logger:   logger,
	}, nil
}

// Handler returns the HTTP handler with all routes registered
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/session", s.sessionHandler)
	mux.HandleFunc("/pdf/", s.pdfHandler)
	mux.HandleFunc("/health/live", s.livenessHandler)
	mux.HandleFunc("/health/ready", s.readinessHandler)
	mux.HandleFunc("/", s.indexHandler)
	return mux
}

// ListenAndServe starts the HTTP server and begins handling requests
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf(":%d", s.config.Port)
	s.logger.InfoContext(context.Background(), "starting preview server",
		"port", s.config.Port,
		"scratch", s.scratch.Root(),
		"converter", s.pipeline.Binary(),
		"endpoints", []string{"/session", "/pdf/", "/health/live", "/health/ready"},
	)
	return http.ListenAndServe(addr, s.Handler())
}

// sessionHandler upgrades the connection and runs one preview session over
// it. The source file path comes from the "source" query parameter; the
// session starts on the surface's "ready" signal.
func (s *Server) sessionHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	source := r.URL.Query().Get("source")
	if source == "" {
		http.Error(w, "missing source parameter", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "websocket upgrade failed",
			"error", err,
		)
		return
	}
	defer conn.Close()

	surface := newWSSurface(conn)
	sess, err := session.New(session.Config{
		Source:    source,
		Converter: s.pipeline,
		Surface:   surface,
		Logger:    s.logger,
		Locate:    s.artifactLocation,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create session",
			"error", err,
			"source", source,
		)
		return
	}

	s.logger.InfoContext(ctx, "session opened",
		"session_id", sess.ID(),
		"source", source,
	)

	for {
		var msg session.Inbound
		if err := conn.ReadJSON(&msg); err != nil {
			s.logger.DebugContext(ctx, "session closed",
				"session_id", sess.ID(),
				"error", err,
			)
			return
		}
		if err := sess.HandleMessage(ctx, msg); err != nil {
			s.logger.WarnContext(ctx, "message rejected",
				"session_id", sess.ID(),
				"error", err,
			)
		}
	}
}

// artifactLocation maps a scratch-dir path to its serving URL
func (s *Server) artifactLocation(path string) string {
	return "/pdf/" + filepath.Base(path)
}

// pdfHandler serves a converted artifact from the scratch directory
func (s *Server) pdfHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := strings.TrimPrefix(r.URL.Path, "/pdf/")
	data, err := s.scratch.Artifact(name)
	if err != nil {
		s.logger.DebugContext(ctx, "artifact not served",
			"name", name,
			"error", err,
		)
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// indexHandler returns the server information page
func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "deckpeek preview server\n\n")
	fmt.Fprintf(w, "Endpoints:\n")
	fmt.Fprintf(w, "  GET  /session?source=<path>  - Websocket display-surface channel\n")
	fmt.Fprintf(w, "  GET  /pdf/<name>             - Converted artifact\n")
	fmt.Fprintf(w, "  GET  /health/live            - Liveness probe\n")
	fmt.Fprintf(w, "  GET  /health/ready           - Readiness probe\n")
}
