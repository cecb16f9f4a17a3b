// Package tenant routes a verified tenant identity to its own DuckDB backend.
package tenant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// AuthContext is the verified caller identity handed over by the transport layer.
type AuthContext interface {
	// TenantID returns the tenant username, or false when the request is anonymous.
	TenantID() (string, bool)
}

// Lookup records username -> backend key mappings for operators. Failures are
// logged and otherwise ignored.
type Lookup interface {
	RecordTenant(ctx context.Context, username, backendKey string) error
}

// Backend is one tenant's isolated storage unit.
type Backend struct {
	Key      string
	Username string
	DB       *db.DB
}

// Router owns the open backends of the process. Construct one at startup,
// share it between request handlers and Close it on shutdown.
type Router struct {
	dir     string
	lookup  Lookup
	log     *zap.Logger
	metrics *metrics.Metrics

	mu       sync.RWMutex
	backends map[string]*Backend
	group    singleflight.Group
}

// NewRouter creates a router storing backend files under dir. lookup may be nil.
func NewRouter(dir string, lookup Lookup, log *zap.Logger, m *metrics.Metrics) (*Router, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create tenants dir: %w", err)
	}
	if m == nil {
		m = metrics.New(nil)
	}
	return &Router{
		dir:      dir,
		lookup:   lookup,
		log:      log,
		metrics:  m,
		backends: make(map[string]*Backend),
	}, nil
}

// NormalizeUsername trims and lower-cases a username. Every key derivation and
// lookup goes through it.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// BackendKey derives the fixed-length backend key of a username.
func BackendKey(username string) string {
	sum := sha256.Sum256([]byte(NormalizeUsername(username)))
	return hex.EncodeToString(sum[:])
}

// BackendPath returns the database file of a backend key.
func (r *Router) BackendPath(key string) string {
	return filepath.Join(r.dir, key+".duckdb")
}

// ResolveAuth resolves the backend of the authenticated caller.
func (r *Router) ResolveAuth(ctx context.Context, ac AuthContext) (*Backend, error) {
	if ac == nil {
		return nil, kerrors.Unauthorized("tenant.Resolve", "no verified tenant")
	}
	id, ok := ac.TenantID()
	if !ok {
		return nil, kerrors.Unauthorized("tenant.Resolve", "no verified tenant")
	}
	return r.Resolve(ctx, id)
}

// Resolve returns the backend of username, creating it on first use.
// Concurrent first calls for the same tenant open a single handle.
func (r *Router) Resolve(ctx context.Context, username string) (*Backend, error) {
	const op = "tenant.Resolve"

	name := NormalizeUsername(username)
	if name == "" {
		return nil, kerrors.Unauthorized(op, "no verified tenant")
	}
	key := BackendKey(name)

	if b, ok := r.cached(key); ok {
		return b, nil
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		// A previous flight may have finished between the cache miss and Do.
		if b, ok := r.cached(key); ok {
			return b, nil
		}
		b, err := r.open(context.WithoutCancel(ctx), name, key)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.backends[key] = b
		r.mu.Unlock()
		return b, nil
	})
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return v.(*Backend), nil
}

func (r *Router) cached(key string) (*Backend, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.backends[key]
	return b, ok
}

func (r *Router) open(ctx context.Context, username, key string) (*Backend, error) {
	path := r.BackendPath(key)
	database, err := db.NewDB(path)
	if err != nil {
		return nil, fmt.Errorf("open backend: %w", err)
	}

	if err := tables.InitReserved(ctx, database); err != nil {
		database.Close()
		return nil, fmt.Errorf("init reserved tables: %w", err)
	}
	if err := tables.SaveTenantMeta(ctx, database, username, key); err != nil {
		database.Close()
		return nil, fmt.Errorf("save tenant meta: %w", err)
	}

	if r.lookup != nil {
		if err := r.lookup.RecordTenant(ctx, username, key); err != nil {
			r.metrics.LookupFailures.Inc()
			r.log.Warn("could not record tenant lookup", zap.String("backend_key", key), zap.Error(err))
		}
	}

	r.metrics.BackendsOpened.Inc()
	r.log.Info("tenant backend opened", zap.String("backend_key", key), zap.String("path", path))

	return &Backend{Key: key, Username: username, DB: database}, nil
}

// Len reports how many backends are open.
func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.backends)
}

// Close closes every open backend. The router must not be used afterwards.
func (r *Router) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for key, b := range r.backends {
		if err := b.DB.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close backend %s: %w", key, err)
		}
		delete(r.backends, key)
	}
	return firstErr
}
