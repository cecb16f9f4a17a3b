// Package api serves the ShelfDB HTTP interface.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Voltaic314/ShelfDB/api/routes"
	"github.com/Voltaic314/ShelfDB/auth"
	"github.com/Voltaic314/ShelfDB/directory"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/Voltaic314/ShelfDB/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Options configures a ShelfDBServer.
type Options struct {
	Addr       string
	CookieName string
}

// ShelfDBServer represents the ShelfDB HTTP server
type ShelfDBServer struct {
	router   *chi.Mux
	opts     Options
	tenants  *tenant.Router
	dir      *directory.Directory
	auth     *auth.Service
	metrics  *metrics.Metrics
	registry *prometheus.Registry
	log      *zap.Logger
	server   *http.Server
}

// NewShelfDBServer wires the routes around already opened components. The
// caller keeps ownership of tenants and dir and closes them after Stop.
func NewShelfDBServer(opts Options, tenants *tenant.Router, dir *directory.Directory, authSvc *auth.Service, m *metrics.Metrics, reg *prometheus.Registry, log *zap.Logger) *ShelfDBServer {
	s := &ShelfDBServer{
		router:   chi.NewRouter(),
		opts:     opts,
		tenants:  tenants,
		dir:      dir,
		auth:     authSvc,
		metrics:  m,
		registry: reg,
		log:      log,
	}

	// Setup routes with server instance
	routes.RegisterAllRoutes(s.router, s)
	return s
}

// Handler returns the root HTTP handler.
func (s *ShelfDBServer) Handler() http.Handler { return s.router }

// Start serves until Stop is called.
func (s *ShelfDBServer) Start() error {
	s.server = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("ShelfDB server starting", zap.String("addr", s.opts.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", s.opts.Addr, err)
	}
	return nil
}

// Stop gracefully stops the server
func (s *ShelfDBServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Tenants returns the tenant router
func (s *ShelfDBServer) Tenants() *tenant.Router { return s.tenants }

// Auth returns the account service
func (s *ShelfDBServer) Auth() *auth.Service { return s.auth }

// Issuer returns the token issuer
func (s *ShelfDBServer) Issuer() *auth.Issuer { return s.auth.Issuer() }

// CookieName returns the name of the access token cookie
func (s *ShelfDBServer) CookieName() string { return s.opts.CookieName }

// Metrics returns the core collectors
func (s *ShelfDBServer) Metrics() *metrics.Metrics { return s.metrics }

// Registry returns the registry served at /metrics
func (s *ShelfDBServer) Registry() *prometheus.Registry { return s.registry }

// Logger returns the server logger
func (s *ShelfDBServer) Logger() *zap.Logger { return s.log }

// Ping checks the shared directory database
func (s *ShelfDBServer) Ping(ctx context.Context) error { return s.dir.Ping(ctx) }

// OpenBackends reports how many tenant backends are open
func (s *ShelfDBServer) OpenBackends() int { return s.tenants.Len() }
