package tables

import (
	"context"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/jmoiron/sqlx"
)

// Content table columns.
const (
	ColID         = "id"
	ColObjectName = "object_name"
	ColItemName   = "item_name"
	ColCategory   = "category"
	ColCount      = "item_count"
	ColNestType   = "nest_type"
	ColParent     = "parent_table_name"
)

// ContentsTable is one dynamically allocated object table.
type ContentsTable struct {
	Table ident.Ident
}

// NewContentsTable describes the object table with the given name.
func NewContentsTable(table ident.Ident) *ContentsTable {
	return &ContentsTable{Table: table}
}

func (t *ContentsTable) Name() ident.Ident {
	return t.Table
}

func (t *ContentsTable) Schema() string {
	return `
		id BIGINT PRIMARY KEY DEFAULT nextval('` + t.Table.SequenceName() + `'),
		object_name VARCHAR NOT NULL DEFAULT '',
		item_name VARCHAR NOT NULL DEFAULT '',
		category VARCHAR NOT NULL DEFAULT '',
		item_count BIGINT NOT NULL DEFAULT 0 CHECK (item_count >= 0),
		nest_type INTEGER NOT NULL DEFAULT 0 CHECK (nest_type IN (0, 1, 2)),
		parent_table_name VARCHAR
	`
}

// Create provisions the id sequence and the table. Run it inside the same
// transaction as the name computation.
func (t *ContentsTable) Create(ctx context.Context, ex sqlx.ExecerContext) error {
	// A leftover sequence can only exist if an earlier drop was interrupted.
	if _, err := ex.ExecContext(ctx, "CREATE OR REPLACE SEQUENCE "+t.Table.SequenceName()+" START 1"); err != nil {
		return err
	}
	return db.CreateTable(ctx, ex, t.Table, t.Schema())
}

// Drop removes the table and then its sequence, both if present.
func (t *ContentsTable) Drop(ctx context.Context, ex sqlx.ExecerContext) error {
	if err := db.DropTable(ctx, ex, t.Table); err != nil {
		return err
	}
	_, err := ex.ExecContext(ctx, "DROP SEQUENCE IF EXISTS "+t.Table.SequenceName())
	return err
}
