package tables

import (
	"context"
	"fmt"
	"strings"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/jmoiron/sqlx"
)

// Reserved lists the per-backend system tables. They are never treated as
// object tables, whatever their names look like.
var Reserved = []ident.Ident{
	(&TenantMeta{}).Name(),
	(&CanvasState{}).Name(),
}

// IsReserved reports whether name is one of the system tables.
func IsReserved(name string) bool {
	for _, r := range Reserved {
		if strings.EqualFold(r.String(), name) {
			return true
		}
	}
	return false
}

// InitReserved creates the system tables of a backend.
func InitReserved(ctx context.Context, database *db.DB) error {
	return database.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := (&TenantMeta{}).Init(ctx, tx); err != nil {
			return err
		}
		return (&CanvasState{}).Init(ctx, tx)
	})
}

// DynamicTables returns the object tables of a backend: every non-reserved
// table named prefix_<digits>. Anything else is skipped.
func DynamicTables(ctx context.Context, database *db.DB) ([]ident.Ident, error) {
	names, err := database.TableNames(ctx)
	if err != nil {
		return nil, err
	}

	var out []ident.Ident
	for _, name := range names {
		if IsReserved(name) {
			continue
		}
		id, ok := ident.Existing(name)
		if !ok || !id.IsDynamic() {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

// CheckObjectTable rejects the zero Ident and the system tables, neither of
// which may be addressed as an object table.
func CheckObjectTable(op string, table ident.Ident) error {
	if table.IsZero() {
		return kerrors.Invalid(op, "table name is required")
	}
	if IsReserved(table.String()) {
		return kerrors.Invalid(op, fmt.Sprintf("table %s is reserved", table))
	}
	return nil
}
