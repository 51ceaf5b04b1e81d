// Package api serves a read-only HTTP view of a running simulation: its
// status, statistics history, display-house narration and population
// pyramid.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
)

// Config configures the HTTP server.
type Config struct {
	Port           int
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Server serves the feed over HTTP.
type Server struct {
	Feed *Feed
	cfg  Config

	limiter *RateLimiter
	srv     *http.Server
	done    chan struct{}
}

// NewServer creates a server reading from feed.
func NewServer(feed *Feed, cfg Config) *Server {
	return &Server{
		Feed:    feed,
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		done:    make(chan struct{}),
	}
}

// Handler returns the API's routes wrapped in CORS and rate limiting.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/status", s.handleStatus)
	mux.HandleFunc("GET /api/v1/stats/history", s.handleStatsHistory)
	mux.HandleFunc("GET /api/v1/narration", s.handleNarration)
	mux.HandleFunc("GET /api/v1/pyramid", s.handlePyramid)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.limiter.Middleware(mux))
}

// Start begins serving in a goroutine.
func (s *Server) Start() {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	slog.Info("HTTP API starting", "addr", addr, "cors_origins", s.cfg.CORSOrigins)

	go s.cleanupLoop()
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// Shutdown stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	close(s.done)
	return s.srv.Shutdown(ctx)
}

func (s *Server) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.limiter.Cleanup()
		case <-s.done:
			return
		}
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Feed.Status())
}

// handleStatsHistory serves the statistics series, optionally from ?from=YEAR.
func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	from := 0
	if v := r.URL.Query().Get("from"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "from must be a year", http.StatusBadRequest)
			return
		}
		from = n
	}
	writeJSON(w, s.Feed.Series(from))
}

func (s *Server) handleNarration(w http.ResponseWriter, r *http.Request) {
	house, lines := s.Feed.Narration()
	writeJSON(w, map[string]any{
		"house": house,
		"lines": lines,
	})
}

func (s *Server) handlePyramid(w http.ResponseWriter, r *http.Request) {
	p := s.Feed.Pyramid()
	if p == nil {
		http.Error(w, "no pyramid yet", http.StatusNotFound)
		return
	}
	writeJSON(w, p)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
