package objects

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// ListResponse represents the output for listing object tables
type ListResponse struct {
	Tables []dbTypes.TableInfo
}

// List returns every object table of the backend with its row count.
func List(ctx context.Context, database *db.DB) (*ListResponse, error) {
	const op = "objects.List"

	dynamic, err := tables.DynamicTables(ctx, database)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	out := make([]dbTypes.TableInfo, 0, len(dynamic))
	for _, table := range dynamic {
		query, args, err := sq.Select("COUNT(*)").From(table.Quoted()).ToSql()
		if err != nil {
			return nil, kerrors.Storage(op, err)
		}

		var rows int64
		if err := database.Get(ctx, &rows, query, args...); err != nil {
			return nil, kerrors.Storage(op, err)
		}
		out = append(out, dbTypes.TableInfo{TableName: table.String(), Rows: rows})
	}
	return &ListResponse{Tables: out}, nil
}
