// Package api serves the save codec over HTTP.
//
// Routes, all under /api/v1 except metrics:
//
//	GET  /health            service status and supported versions
//	POST /decode            binary save in, JSON or YAML document out
//	POST /encode            JSON or YAML document in, binary save out
//	POST /verify            binary save in, round-trip report out
//	POST /info              binary save in, summary out
//	GET  /backups           archived snapshots
//	GET  /backups/{id}      raw bytes of one snapshot
//	GET  /metrics           Prometheus metrics
//
// The structured format follows the format query parameter, then the
// Accept (decode) or Content-Type (encode) header. When an API key is
// configured every /api/v1 request must carry it in X-API-Key.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds the HTTP handler for s
func NewRouter(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"X-Save-Version"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))

		r.Post("/decode", s.metrics.InstrumentHandler("POST", "/api/v1/decode", s.handleDecode))
		r.Post("/encode", s.metrics.InstrumentHandler("POST", "/api/v1/encode", s.handleEncode))
		r.Post("/verify", s.metrics.InstrumentHandler("POST", "/api/v1/verify", s.handleVerify))
		r.Post("/info", s.metrics.InstrumentHandler("POST", "/api/v1/info", s.handleInfo))

		r.Get("/backups", s.metrics.InstrumentHandler("GET", "/api/v1/backups", s.handleListBackups))
		r.Get("/backups/{id}", s.metrics.InstrumentHandler("GET", "/api/v1/backups/{id}", s.handleGetBackup))
	})

	return r
}

// StartServer serves the API until ctx is cancelled, then shuts down
// gracefully
func StartServer(ctx context.Context, config ServerConfig, archive Archive, logger *slog.Logger) error {
	server := NewServer(config, archive, NewMetrics(), logger)

	httpServer := &http.Server{
		Addr:              net.JoinHostPort(config.Bind, strconv.Itoa(config.Port)),
		Handler:           NewRouter(server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	server.logger.Info("starting cm3d2save API server",
		"addr", httpServer.Addr,
		"auth", config.APIKey != "",
		"archive", archive != nil,
	)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.logger.Info("shutting down API server")
		return httpServer.Shutdown(shutdownCtx)
	}
}
