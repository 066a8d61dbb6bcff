// Package proxy is the development reverse proxy: it forwards the textbook
// site's backend paths to the real backend so the static site and the API
// can be served from one origin during development.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/physicalai/companion/internal/logging"
)

// DefaultPrefixes are the backend paths the site expects on its own origin.
var DefaultPrefixes = []string{"/api", "/query", "/ingest", "/health"}

type Config struct {
	Listen   string
	Target   string
	Prefixes []string
}

// NewRouter builds the proxy handler: a chi router that forwards the
// configured path prefixes to the target and answers 404 for everything
// else. Every proxied request is logged with method, path, and status.
func NewRouter(cfg Config, logger logging.Logger) (http.Handler, error) {
	target, err := url.Parse(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("parsing proxy target: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("proxy target must be an absolute URL, got %q", cfg.Target)
	}

	log := logger.With("component", "proxy", "target", target.String())

	rp := httputil.NewSingleHostReverseProxy(target)
	rp.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error(r.Context(), "upstream request failed", "method", r.Method, "path", r.URL.Path, "error", err.Error())
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintln(w, "backend unreachable")
	}

	prefixes := cfg.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultPrefixes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(logRequests(log))

	for _, prefix := range prefixes {
		r.Handle(prefix, rp)
		r.Handle(prefix+"/*", rp)
	}

	return r, nil
}

// logRequests logs one line per request with the final status code.
func logRequests(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info(r.Context(), "proxied request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
			)
		})
	}
}

// Run serves the proxy until ctx is canceled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config, logger logging.Logger) error {
	handler, err := NewRouter(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Listen,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "dev proxy listening", "addr", cfg.Listen, "target", cfg.Target)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
