// Package sdk is an in-process client over the storage core, scoped to a
// single tenant. The admin CLI and tests use it instead of the HTTP API.
package sdk

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Voltaic314/ShelfDB/core/canvas"
	"github.com/Voltaic314/ShelfDB/core/contents"
	"github.com/Voltaic314/ShelfDB/core/objects"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/Voltaic314/ShelfDB/tenant"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"go.uber.org/zap"
)

// ShelfDBClient provides the core operations for one tenant
type ShelfDBClient struct {
	tenants *tenant.Router
	owned   bool
	backend *tenant.Backend
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewShelfDBClient creates a client for username on a shared router
func NewShelfDBClient(ctx context.Context, tenants *tenant.Router, username string, m *metrics.Metrics, log *zap.Logger) (*ShelfDBClient, error) {
	b, err := tenants.Resolve(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ShelfDBClient{tenants: tenants, backend: b, metrics: m, log: log}, nil
}

// NewShelfDBClientWithDir creates a client with its own router over the
// tenants directory. Close releases the router.
func NewShelfDBClientWithDir(ctx context.Context, tenantsDir, username string, lookup tenant.Lookup, log *zap.Logger) (*ShelfDBClient, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := metrics.New(nil)
	tenants, err := tenant.NewRouter(tenantsDir, lookup, log, m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	c, err := NewShelfDBClient(ctx, tenants, username, m, log)
	if err != nil {
		tenants.Close()
		return nil, err
	}
	c.owned = true
	return c, nil
}

// Close releases the router when the client created it
func (c *ShelfDBClient) Close() error {
	if c.owned {
		return c.tenants.Close()
	}
	return nil
}

// Username returns the normalized tenant username
func (c *ShelfDBClient) Username() string { return c.backend.Username }

// BackendKey returns the key of the tenant's backend
func (c *ShelfDBClient) BackendKey() string { return c.backend.Key }

// AllocateObject creates the next object table for a type prefix
func (c *ShelfDBClient) AllocateObject(ctx context.Context, objectType string) (string, error) {
	resp, err := objects.Allocate(ctx, c.backend.DB, c.metrics, objects.AllocateRequest{Type: objectType})
	if err != nil {
		return "", fmt.Errorf("failed to allocate object: %w", err)
	}
	return resp.TableName.String(), nil
}

// ListObjects lists the object tables
func (c *ShelfDBClient) ListObjects(ctx context.Context) ([]dbTypes.TableInfo, error) {
	resp, err := objects.List(ctx, c.backend.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}
	return resp.Tables, nil
}

// RenameObject overwrites the display name of every row of a table
func (c *ShelfDBClient) RenameObject(ctx context.Context, table, newName string) error {
	_, err := objects.Rename(ctx, c.backend.DB, objects.RenameRequest{Table: ident.TableName(table), NewName: newName})
	if err != nil {
		return fmt.Errorf("failed to rename object: %w", err)
	}
	return nil
}

// DropObject drops an object table
func (c *ShelfDBClient) DropObject(ctx context.Context, table string) error {
	if err := objects.Drop(ctx, c.backend.DB, objects.DropRequest{Table: ident.TableName(table)}); err != nil {
		return fmt.Errorf("failed to drop object: %w", err)
	}
	return nil
}

// Reset drops every object table and returns their names
func (c *ShelfDBClient) Reset(ctx context.Context) ([]string, error) {
	resp, err := objects.Reset(ctx, c.backend.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to reset tenant: %w", err)
	}

	names := make([]string, 0, len(resp.Dropped))
	for _, t := range resp.Dropped {
		names = append(names, t.String())
	}
	c.log.Info("tenant reset", zap.String("backend_key", c.backend.Key), zap.Int("dropped", len(names)))
	return names, nil
}

// InsertContent adds a row to a table and returns its id
func (c *ShelfDBClient) InsertContent(ctx context.Context, table string, content dbTypes.NewContent) (int64, error) {
	resp, err := contents.Insert(ctx, c.backend.DB, contents.InsertRequest{Table: ident.TableName(table), Content: content})
	if err != nil {
		return 0, fmt.Errorf("failed to insert content: %w", err)
	}
	return resp.ID, nil
}

// ListRowIDs returns a table's row ids in ascending order
func (c *ShelfDBClient) ListRowIDs(ctx context.Context, table string) ([]int64, error) {
	resp, err := contents.ListRowIDs(ctx, c.backend.DB, contents.ListRequest{Table: ident.TableName(table)})
	if err != nil {
		return nil, fmt.Errorf("failed to list row ids: %w", err)
	}
	return resp.IDs, nil
}

// ListContents returns a table's rows in ascending id order
func (c *ShelfDBClient) ListContents(ctx context.Context, table string) ([]dbTypes.ContentRow, error) {
	resp, err := contents.List(ctx, c.backend.DB, contents.ListRequest{Table: ident.TableName(table)})
	if err != nil {
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return resp.Rows, nil
}

// DeleteContents deletes rows by zero-based position and returns their ids
func (c *ShelfDBClient) DeleteContents(ctx context.Context, table string, positions []int) ([]int64, error) {
	resp, err := contents.DeleteByPositions(ctx, c.backend.DB, contents.DeleteRequest{Table: ident.TableName(table), Positions: positions})
	if err != nil {
		return nil, fmt.Errorf("failed to delete contents: %w", err)
	}
	return resp.Deleted, nil
}

// Search finds tables with rows matching the name and category terms
func (c *ShelfDBClient) Search(ctx context.Context, name, category string) ([]dbTypes.Match, error) {
	resp, err := contents.Search(ctx, c.backend.DB, c.log, c.metrics, contents.SearchRequest{Name: name, Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	return resp.Matches, nil
}

// Children lists the rows nested under a table
func (c *ShelfDBClient) Children(ctx context.Context, parent string) ([]dbTypes.Child, error) {
	resp, err := contents.Children(ctx, c.backend.DB, contents.ChildrenRequest{Parent: ident.TableName(parent)})
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	return resp.Children, nil
}

// SaveCanvas marshals state and stores it as the canvas snapshot
func (c *ShelfDBClient) SaveCanvas(ctx context.Context, state interface{}) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode canvas: %w", err)
	}
	if err := canvas.Save(ctx, c.backend.DB, canvas.SaveRequest{State: raw}); err != nil {
		return fmt.Errorf("failed to save canvas: %w", err)
	}
	return nil
}

// LoadCanvas decodes the snapshot into dst. It reports false, leaving dst
// untouched, when nothing was saved.
func (c *ShelfDBClient) LoadCanvas(ctx context.Context, dst interface{}) (bool, error) {
	resp, err := canvas.Load(ctx, c.backend.DB)
	if err != nil {
		return false, fmt.Errorf("failed to load canvas: %w", err)
	}
	if !resp.Found {
		return false, nil
	}
	if err := json.Unmarshal(resp.State, dst); err != nil {
		return false, fmt.Errorf("failed to decode canvas: %w", err)
	}
	return true, nil
}

// ClearCanvas removes the snapshot
func (c *ShelfDBClient) ClearCanvas(ctx context.Context) error {
	if err := canvas.Clear(ctx, c.backend.DB); err != nil {
		return fmt.Errorf("failed to clear canvas: %w", err)
	}
	return nil
}
