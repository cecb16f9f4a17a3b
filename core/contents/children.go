package contents

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// ChildrenRequest represents the input for listing the rows nested under a table
type ChildrenRequest struct {
	Parent ident.Ident
}

// ChildrenResponse represents the output for listing the rows nested under a table
type ChildrenResponse struct {
	Children []dbTypes.Child
}

// Children returns every row, across all object tables, whose parent
// reference names req.Parent. The parent table itself need not exist.
func Children(ctx context.Context, database *db.DB, req ChildrenRequest) (*ChildrenResponse, error) {
	const op = "contents.Children"

	if req.Parent.IsZero() {
		return nil, kerrors.Invalid(op, "parent table name is required")
	}

	dynamic, err := tables.DynamicTables(ctx, database)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	resp := &ChildrenResponse{Children: []dbTypes.Child{}}
	for _, table := range dynamic {
		query, args, err := sq.Select(tables.ColID, tables.ColItemName, tables.ColNestType).
			From(table.Quoted()).
			Where(sq.Eq{tables.ColParent: req.Parent.String()}).
			OrderBy(tables.ColID).
			ToSql()
		if err != nil {
			return nil, kerrors.Storage(op, err)
		}

		var rows []struct {
			ID       int64  `db:"id"`
			ItemName string `db:"item_name"`
			NestType int    `db:"nest_type"`
		}
		if err := database.Select(ctx, &rows, query, args...); err != nil {
			return nil, kerrors.Storage(op, fmt.Errorf("table %s: %w", table, err))
		}
		for _, r := range rows {
			resp.Children = append(resp.Children, dbTypes.Child{
				TableName: table.String(),
				RowID:     r.ID,
				ItemName:  r.ItemName,
				NestType:  r.NestType,
			})
		}
	}
	return resp, nil
}
