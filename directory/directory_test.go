package directory

import (
	"context"
	"path/filepath"
	"testing"

	kerrors "github.com/Voltaic314/ShelfDB/kit/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := Open(context.Background(), filepath.Join(t.TempDir(), "dir", "directory.db"), zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	u, err := d.CreateUser(ctx, "alice", "hash")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)

	_, err = d.CreateUser(ctx, "alice", "other")
	require.Error(t, err)
	assert.Equal(t, kerrors.EConflict, kerrors.ErrorCode(err))

	got, err := d.FindUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)

	_, err = d.FindUser(ctx, "bob")
	assert.Equal(t, kerrors.ENotFound, kerrors.ErrorCode(err))
}

func TestTenantLookup(t *testing.T) {
	ctx := context.Background()
	d := newTestDirectory(t)

	require.NoError(t, d.RecordTenant(ctx, "bob", "k2"))
	require.NoError(t, d.RecordTenant(ctx, "alice", "k1"))
	require.NoError(t, d.RecordTenant(ctx, "alice", "k1"))

	key, err := d.GetBackendKey(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "k1", key)

	entries, err := d.ListTenants(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, "bob", entries[1].Username)
}
