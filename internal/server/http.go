package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/gokatarajesh/trivia-rooms/internal/config"
	"github.com/gokatarajesh/trivia-rooms/internal/logging"
	"github.com/gokatarajesh/trivia-rooms/internal/question"
	"github.com/gokatarajesh/trivia-rooms/internal/room"
	"github.com/gokatarajesh/trivia-rooms/internal/session"
	httperrors "github.com/gokatarajesh/trivia-rooms/pkg/http/errors"
)

// Pinger checks one upstream dependency.
type Pinger func(ctx context.Context) error

// Routes bundles the handlers mounted on the API mux.
type Routes struct {
	Questions *question.HTTPHandlers
	Rooms     *room.HTTPHandlers
	Sessions  *session.HTTPHandlers
	Gatherer  prometheus.Gatherer
	Pingers   []Pinger
}

// NewHTTPServer wires base routes (health, metrics) and the API endpoints.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, routes Routes) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewHandler(logger, routes),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// NewHandler builds the instrumented mux.
func NewHandler(logger zerolog.Logger, routes Routes) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if routes.Gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(routes.Gatherer, promhttp.HandlerOpts{}))
	} else {
		mux.Handle("/metrics", promhttp.Handler())
	}

	mux.HandleFunc("/v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), routes.Pingers); err != nil {
			reqLogger := logging.FromContext(r.Context(), logger)
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	if routes.Questions != nil {
		mux.HandleFunc("/v1/questions/generate", routes.Questions.Generate)
		mux.HandleFunc("/v1/questions/sample/{difficulty}", routes.Questions.Sample)
	}

	if routes.Rooms != nil {
		mux.HandleFunc("/v1/rooms", routes.Rooms.CreateRoom)
		mux.HandleFunc("/v1/rooms/{roomID}", routes.Rooms.GetRoom)
	}

	if routes.Sessions != nil {
		mux.HandleFunc("/v1/sessions/me", routes.Sessions.Me)
	}

	return otelhttp.NewHandler(withRequestLogger(mux, logger), "trivia-api")
}

func withRequestLogger(next http.Handler, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := logger.With().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Logger()
		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			reqLogger = reqLogger.With().Str("trace_id", sc.TraceID().String()).Logger()
		}
		if sessionID := r.Header.Get(session.Header); sessionID != "" {
			reqLogger = reqLogger.With().Str("session_id", sessionID).Logger()
		}
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))
	})
}

func pingDependencies(ctx context.Context, pingers []Pinger) error {
	for _, ping := range pingers {
		if err := ping(ctx); err != nil {
			return err
		}
	}
	return nil
}
