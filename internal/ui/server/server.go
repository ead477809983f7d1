// Package server serves the landing page and the waitlist endpoints.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Its-donkey/contractually/internal/config"
	"github.com/Its-donkey/contractually/internal/metrics"
	"github.com/Its-donkey/contractually/internal/ratelimit"
	"github.com/Its-donkey/contractually/internal/visit"
	"github.com/Its-donkey/contractually/internal/waitlist"
	"github.com/Its-donkey/contractually/logging"
)

//go:embed static
var staticFS embed.FS

const (
	logCategory        = "http"
	maxLoggedBodyBytes = 4096
	maxSubmitBodyBytes = 8 << 10
)

// Options configures the landing page HTTP server.
type Options struct {
	Listen    string
	Site      config.SiteConfig
	Submitter waitlist.Submitter
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
	Visits    visit.Options
	RateLimit config.RateLimitConfig

	// SweepInterval controls how often expired visits are dropped.
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
}

// Server holds the request handlers and their shared state.
type Server struct {
	site    config.SiteConfig
	logger  *logging.Logger
	metrics *metrics.Metrics
	visits  *visit.Store
	limiter *ratelimit.Limiter
	now     func() time.Time
	router  chi.Router
}

// New wires the router. A nil Submitter is allowed; every signup then fails.
func New(opts Options) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	visitOpts := opts.Visits
	onSize := visitOpts.OnSizeChange
	visitOpts.OnSizeChange = func(n int) {
		m.ActiveVisits.Set(float64(n))
		if onSize != nil {
			onSize(n)
		}
	}
	submitter := opts.Submitter
	visits := visit.NewStore(func(sink waitlist.Sink) *waitlist.Controller {
		return waitlist.NewController(submitter, sink, waitlist.WithLogger(logger))
	}, visitOpts)

	var limiter *ratelimit.Limiter
	if opts.RateLimit.IsEnabled() {
		limiter = ratelimit.New(opts.RateLimit.RPS, opts.RateLimit.Burst, 0)
	}

	s := &Server{
		site:    opts.Site,
		logger:  logger,
		metrics: m,
		visits:  visits,
		limiter: limiter,
		now:     time.Now,
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	httpLogger := logging.NewHTTPLogger(s.logger, maxLoggedBodyBytes, "name", "email")
	throttle := s.limiter.Middleware(func(r *http.Request) {
		s.metrics.RateLimited.Inc()
		s.logger.Warn(logCategory, "submit rate limited", map[string]any{
			"remote_addr": ratelimit.ClientKey(r),
			"path":        r.URL.Path,
		})
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpLogger.Middleware)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())

	r.With(throttle).Post("/waitlist", s.handleSubmitForm)
	r.With(throttle).Post("/api/waitlist", s.handleSubmitAPI)
	r.Get("/api/waitlist/{visit}", s.handleVisitStatus)

	s.router = r
	return nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Visits exposes the visit store.
func (s *Server) Visits() *visit.Store {
	return s.visits
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, opts Options) error {
	if strings.TrimSpace(opts.Listen) == "" {
		opts.Listen = config.Default().Server.Listen()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}

	srv, err := New(opts)
	if err != nil {
		return err
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go srv.visits.Run(sweepCtx, opts.SweepInterval)

	server := &http.Server{
		Addr:              opts.Listen,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          srv.logger.StdLogger(logging.ERROR, logCategory),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	srv.logger.Info("general", "serving landing page", map[string]any{
		"listen": opts.Listen,
		"site":   srv.siteName(),
	})

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.ShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

func (s *Server) siteName() string {
	if name := strings.TrimSpace(s.site.Name); name != "" {
		return name
	}
	return "ContrActually"
}
