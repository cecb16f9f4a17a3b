package contents

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/jmoiron/sqlx"
)

// DeleteRequest represents the input for deleting rows by position
type DeleteRequest struct {
	Table     ident.Ident
	Positions []int
}

// DeleteResponse represents the output for deleting rows by position
type DeleteResponse struct {
	Deleted []int64
}

// DeleteByPositions deletes the rows at the given zero-based positions of the
// ascending id list. Out of range and repeated positions are ignored, and a
// missing table is treated as already empty.
func DeleteByPositions(ctx context.Context, database *db.DB, req DeleteRequest) (*DeleteResponse, error) {
	const op = "contents.DeleteByPositions"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return nil, err
	}

	unlock := database.LockTable(req.Table)
	defer unlock()

	exists, err := database.TableExists(ctx, req.Table)
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	if !exists || len(req.Positions) == 0 {
		return &DeleteResponse{}, nil
	}

	resp := &DeleteResponse{}
	err = database.InTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := sq.Select(tables.ColID).From(req.Table.Quoted()).OrderBy(tables.ColID).ToSql()
		if err != nil {
			return err
		}
		var ids []int64
		if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
			return err
		}

		targets := pick(ids, req.Positions)
		if len(targets) == 0 {
			return nil
		}

		query, args, err = sq.Delete(req.Table.Quoted()).Where(sq.Eq{tables.ColID: targets}).ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
		resp.Deleted = targets
		return nil
	})
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return resp, nil
}

// pick translates positions into ids, in position order, without duplicates.
func pick(ids []int64, positions []int) []int64 {
	seen := make(map[int]bool, len(positions))
	var out []int64
	for _, p := range positions {
		if p < 0 || p >= len(ids) || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, ids[p])
	}
	return out
}
