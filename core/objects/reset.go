package objects

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/jmoiron/sqlx"
)

// ResetResponse represents the output for resetting a tenant
type ResetResponse struct {
	Dropped []ident.Ident
}

// Reset drops every object table of the backend in one transaction. System
// tables, the canvas snapshot included, are left alone. Every drop is
// drop-if-exists, so a reset interrupted by a crash can simply be run again.
func Reset(ctx context.Context, database *db.DB) (*ResetResponse, error) {
	const op = "objects.Reset"

	unlock := database.LockSchema()
	defer unlock()

	dynamic, err := tables.DynamicTables(ctx, database)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	if len(dynamic) == 0 {
		return &ResetResponse{}, nil
	}

	err = database.InTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range dynamic {
			if err := tables.NewContentsTable(table).Drop(ctx, tx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return &ResetResponse{Dropped: dynamic}, nil
}
