package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shubhamdevjs/Reddit-Masterming/internal/config"
	"github.com/shubhamdevjs/Reddit-Masterming/internal/core"
)

type contextKey string

const loggerContextKey = contextKey("logger")

const shutdownTimeout = 10 * time.Second

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaignplan_api_requests_total",
		Help: "Number of API requests by route and status.",
	}, []string{"method", "route", "status_code"})
)

type Server struct {
	Logger    *slog.Logger
	Config    *config.Config
	Campaigns core.CampaignRepository
	Pipeline  core.PipelineClient

	server *http.Server
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

func (s *Server) Run(ctx context.Context) error {
	s.Logger.Info("Starting API server", "addr", s.server.Addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		s.server.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "api.Server")

	s.server = &http.Server{
		Handler:           s.router(),
		Addr:              s.Config.APIAddr,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
		// Campaign generation is synchronous on the backend.
		WriteTimeout: s.Config.PipelineTimeout + 10*time.Second,
		IdleTimeout:  time.Minute,
	}
	return nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func (s *Server) router() http.Handler {
	r := chi.NewMux()

	r.Use(
		// json content type
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				next.ServeHTTP(w, r)
			})
		},

		// Logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger := s.Logger.With("method", r.Method, "path", r.URL.Path)
				ctx := context.WithValue(r.Context(), loggerContextKey, logger)
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		},

		// Access log and request metrics
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				start := time.Now()
				sw := &statusWriter{ResponseWriter: w}

				next.ServeHTTP(sw, r)

				route := chi.RouteContext(r.Context()).RoutePattern()
				if route == "" {
					route = "unmatched"
				}
				requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()

				logger(r.Context()).Info("request", "duration", time.Since(start), "status", sw.status)
			})
		},

		// Recovering panics and logging
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				defer func() {
					if err := recover(); err != nil {
						logger(r.Context()).Error("panic recovered", "error", err)
						writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Internal Server Error"})
					}
				}()
				next.ServeHTTP(w, r)
			})
		},
	)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", s.listCampaigns)
		r.Post("/", s.createCampaign)
		r.Post("/demo", s.createDemoCampaign)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getCampaign)
			r.Delete("/", s.deleteCampaign)
			r.Get("/weeks", s.getCalendar)
			r.Get("/weeks/{week}", s.getWeek)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Message: "method not allowed"})
	})

	return r
}
