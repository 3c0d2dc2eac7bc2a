// Package server serves the leaderboard and influencer endpoints over HTTP,
// backed by the same resolvers the CLI uses. In mock mode it hands out the
// fixture payloads, which makes it a local stand-in for the real API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/rshade/trustboard/internal/engine"
	"github.com/rshade/trustboard/internal/fetch"
)

// Defaults for Config fields left at zero.
const (
	DefaultListen       = "127.0.0.1:5000"
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 60 * time.Second
	shutdownTimeout     = 5 * time.Second
)

// Resolver resolves keyed documents. *fetch.Resolver satisfies it.
type Resolver[T any] interface {
	Resolve(ctx context.Context, key string) fetch.Result[T]
}

// Config holds server settings.
type Config struct {
	Listen string

	// RateLimit caps /api requests per second across all clients. Requests
	// over budget get 429. Zero disables the limit.
	RateLimit float64
	Burst     int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server is the trustboard HTTP API.
type Server struct {
	cfg          Config
	router       *mux.Router
	leaderboards Resolver[engine.Leaderboard]
	influencers  Resolver[engine.Payload]
	limiter      *rate.Limiter
	logger       zerolog.Logger
	gatherer     prometheus.Gatherer
	requests     *prometheus.CounterVec
	started      time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithRegistry registers the server's request counter on reg and exposes
// reg on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.gatherer = reg
		s.requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trustboard_http_requests_total",
			Help: "HTTP requests served, by route and status code.",
		}, []string{"route", "code"})
		reg.MustRegister(s.requests)
	}
}

// New builds a server. Nothing listens until ListenAndServe.
func New(
	cfg Config,
	leaderboards Resolver[engine.Leaderboard],
	influencers Resolver[engine.Payload],
	opts ...Option,
) *Server {
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	s := &Server{
		cfg:          cfg,
		router:       mux.NewRouter(),
		leaderboards: leaderboards,
		influencers:  influencers,
		logger:       zerolog.Nop(),
		gatherer:     prometheus.DefaultGatherer,
		started:      time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.Use(jsonContentTypeMiddleware)
	api.HandleFunc("/leaderboard", s.handleLeaderboard).Methods(http.MethodGet).Name("leaderboard")
	api.HandleFunc("/influencer/{username}", s.handleInfluencer).Methods(http.MethodGet).Name("influencer")

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet).Name("health")
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).
		Methods(http.MethodGet).Name("metrics")

	// mux skips router middleware for unmatched paths.
	s.router.NotFoundHandler = s.requestIDMiddleware(s.requestLoggingMiddleware(http.HandlerFunc(s.handleNotFound)))
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) ListenAndServe(ctx context.Context, ready chan<- string) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Listen, err)
	}

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  orDefault(s.cfg.ReadTimeout, defaultReadTimeout),
		WriteTimeout: orDefault(s.cfg.WriteTimeout, defaultWriteTimeout),
		IdleTimeout:  orDefault(s.cfg.IdleTimeout, defaultIdleTimeout),
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
	if ready != nil {
		ready <- ln.Addr().String()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	return nil
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
