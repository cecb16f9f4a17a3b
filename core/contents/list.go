package contents

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
)

// ListRequest represents the input for listing a table's rows
type ListRequest struct {
	Table ident.Ident
}

// ListRowIDsResponse represents the output for listing row ids
type ListRowIDsResponse struct {
	IDs []int64
}

// ListResponse represents the output for listing rows
type ListResponse struct {
	Rows []dbTypes.ContentRow
}

// ListRowIDs returns the row ids of a table in ascending order. Positions
// passed to DeleteByPositions index into this list.
func ListRowIDs(ctx context.Context, database *db.DB, req ListRequest) (*ListRowIDsResponse, error) {
	const op = "contents.ListRowIDs"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, database, op, req.Table); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(tables.ColID).From(req.Table.Quoted()).OrderBy(tables.ColID).ToSql()
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	ids := []int64{}
	if err := database.Select(ctx, &ids, query, args...); err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return &ListRowIDsResponse{IDs: ids}, nil
}

// List returns the full rows of a table in ascending id order.
func List(ctx context.Context, database *db.DB, req ListRequest) (*ListResponse, error) {
	const op = "contents.List"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return nil, err
	}
	if err := mustExist(ctx, database, op, req.Table); err != nil {
		return nil, err
	}

	query, args, err := sq.Select(
		tables.ColID, tables.ColObjectName, tables.ColItemName, tables.ColCategory,
		tables.ColCount, tables.ColNestType, tables.ColParent,
	).From(req.Table.Quoted()).OrderBy(tables.ColID).ToSql()
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	rows := []dbTypes.ContentRow{}
	if err := database.Select(ctx, &rows, query, args...); err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return &ListResponse{Rows: rows}, nil
}
