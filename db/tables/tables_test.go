package tables

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Voltaic314/ShelfDB/db"
	"github.com/Voltaic314/ShelfDB/ident"
	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "tenant.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, InitReserved(context.Background(), database))
	return database
}

func TestDynamicTablesSkipsReservedAndOddNames(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error {
		for _, name := range []string{"shelf_1", "shelf_2", "box-large_7"} {
			if err := NewContentsTable(ident.TableName(name)).Create(ctx, tx); err != nil {
				return err
			}
		}
		return db.CreateTable(ctx, tx, ident.TableName("notes_archive"), "id INTEGER")
	}))

	got, err := DynamicTables(ctx, database)
	require.NoError(t, err)

	var names []string
	for _, id := range got {
		names = append(names, id.String())
	}
	assert.Equal(t, []string{"box-large_7", "shelf_1", "shelf_2"}, names)
}

func TestContentsTableDefaultsAndSequence(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)
	table := NewContentsTable(ident.TableName("shelf_1"))

	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error { return table.Create(ctx, tx) }))

	var first, second int64
	require.NoError(t, database.QueryRow(ctx, `INSERT INTO "shelf_1" (item_name) VALUES ('a') RETURNING id`).Scan(&first))
	require.NoError(t, database.QueryRow(ctx, `INSERT INTO "shelf_1" (item_name) VALUES ('b') RETURNING id`).Scan(&second))
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	_, err := database.Exec(ctx, `INSERT INTO "shelf_1" (item_count) VALUES (-1)`)
	assert.Error(t, err, "negative counts violate the check constraint")

	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error { return table.Drop(ctx, tx) }))
	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error { return table.Drop(ctx, tx) }), "drop is idempotent")

	// Recreating restarts the sequence.
	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error { return table.Create(ctx, tx) }))
	require.NoError(t, database.QueryRow(ctx, `INSERT INTO "shelf_1" (item_name) VALUES ('c') RETURNING id`).Scan(&first))
	assert.Equal(t, int64(1), first)
}

func TestTenantMetaAndCanvas(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	require.NoError(t, SaveTenantMeta(ctx, database, "alice", "k1"))
	require.NoError(t, SaveTenantMeta(ctx, database, "alice", "k1"))
	user, key, err := GetTenantMeta(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
	assert.Equal(t, "k1", key)

	_, err = GetCanvas(ctx, database)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, SaveCanvas(ctx, database, `{"x":1}`))
	require.NoError(t, SaveCanvas(ctx, database, `{"x":2}`))
	state, err := GetCanvas(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, `{"x":2}`, state)

	require.NoError(t, ClearCanvas(ctx, database))
	_, err = GetCanvas(ctx, database)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveTenantMetaOverwrites(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	require.NoError(t, SaveTenantMeta(ctx, database, "alice", "k1"))
	var created time.Time
	require.NoError(t, database.Get(ctx, &created, `SELECT created_at FROM tenant_meta WHERE id = 1`))

	require.NoError(t, SaveTenantMeta(ctx, database, "bob", "k2"))
	user, key, err := GetTenantMeta(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, "bob", user)
	assert.Equal(t, "k2", key)

	var row struct {
		Created time.Time `db:"created_at"`
		Updated time.Time `db:"updated_at"`
		Rows    int       `db:"n"`
	}
	require.NoError(t, database.Get(ctx, &row,
		`SELECT min(created_at) AS created_at, max(updated_at) AS updated_at, count(*) AS n FROM tenant_meta`))
	assert.Equal(t, 1, row.Rows)
	assert.True(t, row.Created.Equal(created), "created_at survives the overwrite")
	assert.False(t, row.Updated.Before(row.Created))
}

func TestIsReserved(t *testing.T) {
	assert.True(t, IsReserved("tenant_meta"))
	assert.True(t, IsReserved("CANVAS_STATE"))
	assert.False(t, IsReserved("shelf_1"))
}

func TestCheckObjectTable(t *testing.T) {
	assert.NoError(t, CheckObjectTable("op", ident.TableName("shelf_1")))
	assert.Equal(t, kerrors.EInvalid, kerrors.ErrorCode(CheckObjectTable("op", ident.TableName("tenant_meta"))))
	assert.Equal(t, kerrors.EInvalid, kerrors.ErrorCode(CheckObjectTable("op", ident.Ident{})))
}
