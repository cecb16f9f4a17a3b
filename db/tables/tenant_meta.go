package tables

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/jmoiron/sqlx"
)

// TenantMeta stores the username a backend was created for.
type TenantMeta struct{}

func (t *TenantMeta) Name() ident.Ident {
	return ident.TableName("tenant_meta")
}

func (t *TenantMeta) Schema() string {
	return `
		id INTEGER NOT NULL PRIMARY KEY,
		username VARCHAR NOT NULL,
		backend_key VARCHAR NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	`
}

// Init creates the tenant_meta table.
func (t *TenantMeta) Init(ctx context.Context, ex sqlx.ExecerContext) error {
	return db.CreateTable(ctx, ex, t.Name(), t.Schema())
}

// SaveTenantMeta overwrites the single metadata row, keeping created_at.
func SaveTenantMeta(ctx context.Context, database *db.DB, username, backendKey string) error {
	query := `INSERT INTO tenant_meta (id, username, backend_key) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET username = excluded.username,
			backend_key = excluded.backend_key, updated_at = now()`
	_, err := database.Exec(ctx, query, username, backendKey)
	return err
}

// GetTenantMeta returns the recorded username and backend key.
func GetTenantMeta(ctx context.Context, database *db.DB) (username, backendKey string, err error) {
	query := `SELECT username, backend_key FROM tenant_meta WHERE id = 1`
	err = database.QueryRow(ctx, query).Scan(&username, &backendKey)
	return
}
