// Package contents performs row operations on object tables and answers
// hierarchy and search queries across them.
package contents

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/db/tables"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"github.com/spf13/cast"
)

// Nest types a row may carry.
const (
	NestNone = 0
	NestA    = 1
	NestB    = 2
)

// InsertRequest represents the input for inserting a content row
type InsertRequest struct {
	Table   ident.Ident
	Content dbTypes.NewContent
}

// InsertResponse represents the output for inserting a content row
type InsertResponse struct {
	ID int64
}

// Insert validates and stores one row, returning its new id. The table must
// already exist.
func Insert(ctx context.Context, database *db.DB, req InsertRequest) (*InsertResponse, error) {
	const op = "contents.Insert"

	if err := tables.CheckObjectTable(op, req.Table); err != nil {
		return nil, err
	}
	count, err := coerceCount(req.Content.Count)
	if err != nil {
		return nil, kerrors.Invalid(op, err.Error())
	}
	nest := coerceNestType(req.Content.NestType)
	parent := normalizeParent(req.Content.ParentTableName)

	unlock := database.LockTable(req.Table)
	defer unlock()

	if err := mustExist(ctx, database, op, req.Table); err != nil {
		return nil, err
	}

	query, args, err := sq.Insert(req.Table.Quoted()).
		Columns(tables.ColObjectName, tables.ColItemName, tables.ColCategory, tables.ColCount, tables.ColNestType, tables.ColParent).
		Values(req.Content.ObjectName, req.Content.ItemName, req.Content.Category, count, nest, parent).
		Suffix("RETURNING " + tables.ColID).
		ToSql()
	if err != nil {
		return nil, kerrors.Storage(op, err)
	}

	var id int64
	if err := database.Get(ctx, &id, query, args...); err != nil {
		return nil, kerrors.Storage(op, err)
	}
	return &InsertResponse{ID: id}, nil
}

// coerceCount accepts integers and integral numbers or numeric strings.
// Absent and null count as zero.
func coerceCount(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case bool:
		return 0, fmt.Errorf("count must be an integer, got %v", n)
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("count must be an integer, got %v", n)
		}
	}

	count, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("count must be an integer, got %v", v)
	}
	if count < 0 {
		return 0, fmt.Errorf("count must not be negative, got %d", count)
	}
	return count, nil
}

// toInt64 reads strings as trimmed base-10 integers, so "010" is ten.
// Everything else goes through cast.
func toInt64(v any) (int64, error) {
	if s, ok := v.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(v)
}

// coerceNestType maps anything outside {0,1,2} to NestNone.
func coerceNestType(v any) int {
	if f, ok := v.(float64); ok && f != math.Trunc(f) {
		return NestNone
	}
	if _, ok := v.(bool); ok {
		return NestNone
	}
	n, err := toInt64(v)
	if err != nil {
		return NestNone
	}
	switch n {
	case NestA, NestB:
		return int(n)
	default:
		return NestNone
	}
}

// normalizeParent returns nil for an absent or empty reference and the
// sanitized table name otherwise.
func normalizeParent(v any) any {
	switch p := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(p) == "" {
			return nil
		}
	}
	return ident.FromValue(v).String()
}

func mustExist(ctx context.Context, database *db.DB, op string, table ident.Ident) error {
	exists, err := database.TableExists(ctx, table)
	if err != nil {
		return kerrors.Storage(op, err)
	}
	if !exists {
		return kerrors.NotFound(op, fmt.Sprintf("table %s does not exist", table))
	}
	return nil
}
