package objects

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/jmoiron/sqlx"
)

// DropRequest represents the input for dropping an object table
type DropRequest struct {
	Table ident.Ident
}

// Drop removes an object table and its id sequence. Dropping a missing table
// succeeds.
func Drop(ctx context.Context, database *db.DB, req DropRequest) error {
	const op = "objects.Drop"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return err
	}

	unlock := database.LockTable(req.Table)
	defer unlock()

	table := req.Table
	stored, ok, err := database.CatalogName(ctx, req.Table)
	if err != nil {
		return kerrors.Storage(op, err)
	}
	if ok {
		table = stored
	}

	err = database.InTx(ctx, func(tx *sqlx.Tx) error {
		return tables.NewContentsTable(table).Drop(ctx, tx)
	})
	if err != nil {
		return kerrors.Storage(op, err)
	}
	return nil
}
