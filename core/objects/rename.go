package objects

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
)

// RenameRequest represents the input for renaming an object
type RenameRequest struct {
	Table   ident.Ident
	NewName string
}

// RenameResponse represents the output for renaming an object
type RenameResponse struct {
	Rows int64
}

// Rename overwrites the display name column of every row in the table.
// A missing table is not an error; zero rows are reported.
func Rename(ctx context.Context, database *db.DB, req RenameRequest) (*RenameResponse, error) {
	const op = "objects.Rename"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return nil, err
	}

	unlock := database.LockTable(req.Table)
	defer unlock()

	exists, err := database.TableExists(ctx, req.Table)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	if !exists {
		return &RenameResponse{}, nil
	}

	query, args, err := sq.Update(req.Table.Quoted()).
		Set(tables.ColObjectName, req.NewName).
		ToSql()
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	res, err := database.Exec(ctx, query, args...)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	n, _ := res.RowsAffected()
	return &RenameResponse{Rows: n}, nil
}
