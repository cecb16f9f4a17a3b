// Package objects manages the lifecycle of object tables: allocation,
// listing, renaming, dropping and tenant-wide reset.
package objects

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/Voltaic314/ShelfDB/metrics"
	"github.com/jmoiron/sqlx"
)

// AllocateRequest represents the input for allocating an object table
type AllocateRequest struct {
	Type string
}

// AllocateResponse represents the output for allocating an object table
type AllocateResponse struct {
	TableName ident.Ident
}

// Allocate creates the next object table for the request's type prefix.
//
// The sequence is one past the highest suffix among existing tables named
// prefix_<digits>, so gaps left by dropped tables are never refilled while a
// higher table survives. Name computation and creation run under the schema
// lock of the backend.
func Allocate(ctx context.Context, database *db.DB, m *metrics.Metrics, req AllocateRequest) (*AllocateResponse, error) {
	const op = "objects.Allocate"

	prefix := ident.TypePrefix(req.Type)

	unlock := database.LockSchema()
	defer unlock()

	names, err := database.TableNames(ctx)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	next := 1
	for _, name := range names {
		if seq, ok := prefix.Sequence(name); ok && seq >= next {
			next = seq + 1
		}
	}

	table := prefix.Table(next)
	err = database.InTx(ctx, func(tx *sqlx.Tx) error {
		return tables.NewContentsTable(table).Create(ctx, tx)
	})
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	if m != nil {
		m.TablesAllocated.Inc()
	}
	return &AllocateResponse{TableName: table}, nil
}
