package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/ContestBot_Go/internal/eventlog"
	"github.com/osse101/ContestBot_Go/internal/handler"
	"github.com/osse101/ContestBot_Go/internal/leaderboard"
	"github.com/osse101/ContestBot_Go/internal/logger"
	"github.com/osse101/ContestBot_Go/internal/metrics"
	"github.com/osse101/ContestBot_Go/internal/moderation"
	"github.com/osse101/ContestBot_Go/internal/registry"
	"github.com/osse101/ContestBot_Go/internal/sse"
	"github.com/osse101/ContestBot_Go/internal/submission"
)

// Config holds the transport settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	Version        string
}

// Services are the components exposed over HTTP. EventLog and Hub may be nil,
// which leaves their admin routes unregistered. Probes are reported by /readyz
// without gating readiness.
type Services struct {
	Registry    registry.Service
	Submission  submission.Service
	Moderation  moderation.Service
	Leaderboard leaderboard.Service
	EventLog    eventlog.Service
	Hub         *sse.Hub
	Storage     handler.Pinger
	Probes      []handler.Probe
}

type Server struct {
	httpServer *http.Server
}

// NewServer wires routes and middleware
func NewServer(cfg Config, svcs Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, svcs),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full route tree. Exposed for end-to-end tests.
func NewRouter(cfg Config, svcs Services) chi.Router {
	r := chi.NewRouter()

	// Middleware runs in the order registered, outermost first
	detector := NewSuspiciousActivityDetector(DefaultDetectorConfig())
	ips := NewClientIPResolver(cfg.TrustedProxies)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(cfg.APIKey, ips, detector))
	r.Use(SecurityLoggingMiddleware(ips, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(svcs.Storage, svcs.Probes...))
	r.Get("/version", handler.HandleVersion(cfg.Version))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/participants", func(r chi.Router) {
			r.Post("/", handler.HandleRegisterParticipant(svcs.Registry))
			r.Get("/{id}", handler.HandleResolveParticipant(svcs.Registry))
			r.Post("/{id}/team", handler.HandleAssignTeam(svcs.Registry))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", handler.HandleCreateTeam(svcs.Registry))
			r.Get("/", handler.HandleListTeams(svcs.Registry))
			r.Get("/{id}/total", handler.HandleTeamTotal(svcs.Leaderboard))
		})

		r.Route("/contributions", func(r chi.Router) {
			r.Post("/", handler.HandleSubmit(svcs.Submission))
			r.Get("/pending", handler.HandleListPending(svcs.Submission))
			r.Get("/{id}", handler.HandleGetContribution(svcs.Submission))
			r.Post("/{id}/decision", handler.HandleDecide(svcs.Moderation))
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", handler.HandleCurrentStanding(svcs.Leaderboard))
			r.Get("/breakdown", handler.HandleBreakdown(svcs.Leaderboard))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Put("/participants/{id}/team", handler.HandleOverrideTeam(svcs.Registry))
			r.Post("/participants/import", handler.HandleImportParticipants(svcs.Registry))
			r.Post("/leaderboard/recompute", handler.HandleRecompute(svcs.Leaderboard))
			r.Get("/leaderboard/verify", handler.HandleVerify(svcs.Leaderboard))
			r.Get("/cache/stats", handler.HandleGetCacheStats(svcs.Registry))

			var clients handler.ClientCounter
			if svcs.Hub != nil {
				clients = svcs.Hub
			}
			r.Get("/metrics", handler.HandleGetMetrics(prometheus.DefaultGatherer, clients))

			if svcs.EventLog != nil {
				r.Get("/events", handler.NewAdminEventsHandler(svcs.EventLog).HandleGetEvents)
			}
			if svcs.Hub != nil {
				r.Get("/events/stream", sse.Handler(svcs.Hub))
				r.Post("/sse/broadcast", handler.HandleSSEBroadcast(svcs.Hub))
			}
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter captures the status code for request logging
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps the console event stream working through the logging wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		start := time.Now()

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start blocks serving HTTP until Stop is called
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
