package sdk

import (
	"context"
	"testing"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	dbTypes "github.com/Voltaic314/ShelfDB/types/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, dir, username string) *ShelfDBClient {
	t.Helper()
	c, err := NewShelfDBClientWithDir(context.Background(), dir, username, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t, t.TempDir(), "Alice")
	assert.Equal(t, "alice", c.Username())
	assert.Len(t, c.BackendKey(), 64)

	shelf, err := c.AllocateObject(ctx, "shelf")
	require.NoError(t, err)
	box, err := c.AllocateObject(ctx, "box")
	require.NoError(t, err)

	_, err = c.InsertContent(ctx, box, dbTypes.NewContent{ItemName: "Coffee Cup", ParentTableName: shelf})
	require.NoError(t, err)
	_, err = c.InsertContent(ctx, box, dbTypes.NewContent{ItemName: "Tea", Count: 4.0})
	require.NoError(t, err)

	_, err = c.InsertContent(ctx, "missing_1", dbTypes.NewContent{})
	assert.Equal(t, kerrors.ENotFound, kerrors.ErrorCode(err))

	matches, err := c.Search(ctx, "cup", "")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, box, matches[0].TableName)

	children, err := c.Children(ctx, shelf)
	require.NoError(t, err)
	assert.Len(t, children, 1)

	require.NoError(t, c.RenameObject(ctx, box, "Crate"))
	deleted, err := c.DeleteContents(ctx, box, []int{1})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, deleted)

	rows, err := c.ListContents(ctx, box)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Crate", rows[0].ObjectName)

	var state map[string]int
	found, err := c.LoadCanvas(ctx, &state)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.SaveCanvas(ctx, map[string]int{"x": 1}))
	found, err = c.LoadCanvas(ctx, &state)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]int{"x": 1}, state)

	dropped, err := c.Reset(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{shelf, box}, dropped)

	tables, err := c.ListObjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestClientsAreIsolated(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	alice := newTestClient(t, dir, "alice")
	bob := newTestClient(t, dir, "bob")

	_, err := alice.AllocateObject(ctx, "shelf")
	require.NoError(t, err)

	tables, err := bob.ListObjects(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
	assert.NotEqual(t, alice.BackendKey(), bob.BackendKey())
}
