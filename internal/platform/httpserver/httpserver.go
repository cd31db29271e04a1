// Package httpserver builds the API's *http.Server.
package httpserver

import (
	"log/slog"
	"net/http"

	"tally/internal/platform/config"
)

// New builds a server for handler using the configured timeouts. The
// server's own errors (TLS handshakes, malformed requests) go to logger.
func New(addr string, cfg config.HTTPConfig, handler http.Handler, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}
}
