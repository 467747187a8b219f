package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sloghttp "github.com/samber/slog-http"

	"github.com/uramit/channel-caption-bot/internal/shared/config"
)

// Server exposes the webhook endpoint and the health probe
type Server struct {
	cfg     *config.Config
	webhook http.HandlerFunc
	logger  *slog.Logger
}

// New creates a new HTTP server
func New(cfg *config.Config) *Server {
	return &Server{
		cfg:    cfg,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// SetWebhookHandler mounts the Telegram webhook handler. Without one
// the endpoint answers 404 (polling deployments).
func (s *Server) SetWebhookHandler(h http.HandlerFunc) {
	s.webhook = h
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Telegram webhook endpoint
	mux.HandleFunc("POST /webhook", s.handleWebhook)

	// Health check endpoint
	mux.HandleFunc("GET /health", s.handleHealth)

	addr := fmt.Sprintf(":%s", s.cfg.HTTPPort)
	s.logger.Info("HTTP server starting", "addr", addr)

	// Use slog-http middleware with recovery
	handler := sloghttp.Recovery(mux)
	handler = sloghttp.New(s.logger)(handler)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server.ListenAndServe()
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if s.webhook == nil {
		http.NotFound(w, r)
		return
	}
	s.webhook(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
