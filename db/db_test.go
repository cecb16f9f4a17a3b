package db

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Voltaic314/ShelfDB/ident"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewDB(filepath.Join(t.TempDir(), "test.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestCreateListDropTables(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	shelf := ident.TableName("shelf-small_1")
	box := ident.TableName("box_1")
	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := CreateTable(ctx, tx, shelf, "id INTEGER"); err != nil {
			return err
		}
		return CreateTable(ctx, tx, box, "id INTEGER")
	}))

	names, err := database.TableNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"box_1", "shelf-small_1"}, names)

	ok, err := database.TableExists(ctx, shelf)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = database.TableExists(ctx, ident.TableName("SHELF-SMALL_1"))
	require.NoError(t, err)
	assert.True(t, ok, "catalog lookups ignore case")

	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error {
		return DropTable(ctx, tx, shelf)
	}))
	ok, err = database.TableExists(ctx, shelf)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogName(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	require.NoError(t, database.InTx(ctx, func(tx *sqlx.Tx) error {
		return CreateTable(ctx, tx, ident.TableName("Shelf_1"), "id INTEGER")
	}))

	name, ok, err := database.CatalogName(ctx, ident.TableName("shelf_1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Shelf_1", name.String())

	_, ok, err = database.CatalogName(ctx, ident.TableName("box_1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInTxRollsBack(t *testing.T) {
	ctx := context.Background()
	database := newTestDB(t)

	table := ident.TableName("rollback_1")
	err := database.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := CreateTable(ctx, tx, table, "id INTEGER"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, "SELECT * FROM no_such_table")
		return err
	})
	require.Error(t, err)

	ok, err := database.TableExists(ctx, table)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLockTableSerializesSameTable(t *testing.T) {
	database := newTestDB(t)
	table := ident.TableName("shelf_1")

	unlock := database.LockTable(table)
	acquired := make(chan struct{})
	go func() {
		release := database.LockTable(ident.TableName("SHELF_1"))
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first was held")
	case <-time.After(50 * time.Millisecond):
	}
	unlock()
	<-acquired

	// Different tables never block each other.
	var wg sync.WaitGroup
	for _, name := range []string{"a_1", "b_1", "c_1"} {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			release := database.LockTable(ident.TableName(n))
			release()
		}(name)
	}
	wg.Wait()
}
