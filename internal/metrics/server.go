package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

const healthTimeout = 2 * time.Second

// HTTPServer serves /metrics and /health. Health fails only when the campaign store is unreachable,
// the generation backend is reported but optional.
type HTTPServer struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    core.KeyValueClient
	Pipeline core.PipelineClient

	srv *http.Server
}

type healthResponse struct {
	Status   string `json:"status"`
	Store    string `json:"store"`
	Pipeline string `json:"pipeline"`
}

func (s *HTTPServer) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.HTTPServer")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.health)

	s.srv = &http.Server{
		Addr:              s.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}
	return nil
}

func (s *HTTPServer) Run(ctx context.Context) error {
	s.Logger.Info("Starting metrics server", "addr", s.srv.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the mux, mostly for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.srv.Handler
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := healthResponse{Status: "ok", Store: "ok", Pipeline: "ok"}
	status := http.StatusOK

	if _, err := s.Store.Keys(ctx); err != nil {
		s.Logger.Error("Health check failed", "check", "store", "error", err)
		resp.Status, resp.Store = "unavailable", "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := s.Pipeline.Health(ctx); err != nil {
		s.Logger.Warn("Pipeline backend unhealthy", "error", err)
		resp.Pipeline = "unavailable"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}
