package tables

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/jmoiron/sqlx"
)

// canvasRowID is the fixed key of the single snapshot row.
const canvasRowID = 1

// CanvasState holds the tenant's canvas snapshot as one opaque JSON document.
type CanvasState struct{}

func (t *CanvasState) Name() ident.Ident {
	return ident.TableName("canvas_state")
}

func (t *CanvasState) Schema() string {
	return `
		id INTEGER NOT NULL PRIMARY KEY,
		state VARCHAR NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	`
}

// Init creates the canvas_state table.
func (t *CanvasState) Init(ctx context.Context, ex sqlx.ExecerContext) error {
	return db.CreateTable(ctx, ex, t.Name(), t.Schema())
}

// SaveCanvas replaces the snapshot.
func SaveCanvas(ctx context.Context, database *db.DB, state string) error {
	query := `INSERT INTO canvas_state (id, state) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET state = excluded.state, updated_at = now()`
	_, err := database.Exec(ctx, query, canvasRowID, state)
	return err
}

// GetCanvas returns the snapshot; sql.ErrNoRows when nothing was saved yet.
func GetCanvas(ctx context.Context, database *db.DB) (string, error) {
	var state string
	err := database.QueryRow(ctx, `SELECT state FROM canvas_state WHERE id = ?`, canvasRowID).Scan(&state)
	return state, err
}

// ClearCanvas removes the snapshot.
func ClearCanvas(ctx context.Context, database *db.DB) error {
	_, err := database.Exec(ctx, `DELETE FROM canvas_state WHERE id = ?`, canvasRowID)
	return err
}
