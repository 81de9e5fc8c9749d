package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	crmetrics "sigs.k8s.io/controller-runtime/pkg/metrics"

	"github.com/potooio/signpost/internal/cache"
	"github.com/potooio/signpost/internal/discovery"
	"github.com/potooio/signpost/internal/events"
	"github.com/potooio/signpost/internal/types"
)

// Defaults applied by NewServer to zero Options fields.
const (
	DefaultListenAddress   = ":8080"
	DefaultRefreshInterval = 30 * time.Second
	DefaultRefreshEvery    = 10 * time.Second
	shutdownTimeout        = 5 * time.Second
)

// Options configures the HTTP server.
type Options struct {
	// ListenAddress is the address the server binds. Default: ":8080".
	ListenAddress string

	// Instance is the instance filter used when a request does not set one.
	Instance string

	// Namespaces restricts every aggregation. Empty means all namespaces.
	Namespaces []string

	// CacheTTL is how long aggregation results are reused. Zero disables reuse.
	CacheTTL time.Duration

	// RefreshInterval is how often the change watcher polls. Default: 30s.
	RefreshInterval time.Duration

	// RefreshEvery is the minimum spacing of POST /api/v1/refresh calls.
	// Default: 10s.
	RefreshEvery time.Duration

	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
}

// Server serves the aggregated view of the cluster.
type Server struct {
	logger  *zap.Logger
	engine  *discovery.Engine
	opts    Options
	cache   *cache.Cache[[]types.Descriptor]
	hub     *events.Hub
	watcher *events.Watcher
	limiter *rate.Limiter
	router  chi.Router
}

// NewServer creates a Server backed by engine.
func NewServer(logger *zap.Logger, engine *discovery.Engine, opts Options) *Server {
	if opts.ListenAddress == "" {
		opts.ListenAddress = DefaultListenAddress
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.RefreshEvery <= 0 {
		opts.RefreshEvery = DefaultRefreshEvery
	}

	s := &Server{
		logger:  logger.Named("api"),
		engine:  engine,
		opts:    opts,
		cache:   cache.New[[]types.Descriptor](opts.CacheTTL),
		hub:     events.NewHub(logger),
		limiter: rate.NewLimiter(rate.Every(opts.RefreshEvery), 1),
	}
	s.watcher = events.NewWatcher(logger, s.snapshot, s.hub, opts.RefreshInterval)
	s.router = s.routes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if len(s.opts.AllowedOrigins) > 0 {
		corsOpts.AllowedOrigins = s.opts.AllowedOrigins
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(crmetrics.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/applications", s.handleApplications)
		r.Get("/applications/{group}/{name}", s.handleApplication)
		r.Get("/bookmarks", s.handleBookmarks)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/stream", s.handleStream)
		r.Method(http.MethodGet, "/capabilities",
			NewCapabilitiesHandler(s.logger, s.engine.Registry(), s.opts.Instance, s.opts.Namespaces))
	})
	return r
}

// Start runs the change watcher and the HTTP server. Blocks until ctx is
// cancelled, then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.ListenAddress,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.watcher.Start(gctx)
	})
	g.Go(func() error {
		s.logger.Info("Starting HTTP server", zap.String("address", s.opts.ListenAddress))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down HTTP server")
		// Close streams first so Shutdown does not wait on them.
		s.hub.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// logRequests logs each request at debug level once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("Handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("requestID", middleware.GetReqID(r.Context())),
		)
	})
}
