package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/Voltaic314/ShelfDB/directory"
	"github.com/Voltaic314/ShelfDB/sdk"
	"github.com/Voltaic314/ShelfDB/tenant"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand(viper.New())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestTenantCommands(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()
	log := zaptest.NewLogger(t)

	dir, err := directory.Open(ctx, filepath.Join(dataDir, "directory.db"), log)
	require.NoError(t, err)
	client, err := sdk.NewShelfDBClientWithDir(ctx, filepath.Join(dataDir, "tenants"), "alice", dir, log)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := client.AllocateObject(ctx, "shelf")
		require.NoError(t, err)
	}
	require.NoError(t, client.Close())
	require.NoError(t, dir.Close())

	out := run(t, "tenant", "lookup", "--data-dir", dataDir, "--log-level", "error")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, tenant.BackendKey("alice"))

	out = run(t, "tenant", "reset", "--username", "alice", "--data-dir", dataDir, "--log-level", "error")
	assert.Contains(t, out, "shelf_1")
	assert.Contains(t, out, "dropped 2 tables for alice")

	out = run(t, "tenant", "seed", "--username", "bob", "--seed", "3", "--shelves", "2", "--box-prob", "0",
		"--data-dir", dataDir, "--log-level", "error")
	assert.Contains(t, out, "seeded 2 tables")
	assert.Contains(t, out, "for bob (seed 3)")
}

func TestServeRequiresSecret(t *testing.T) {
	cmd := newRootCommand(viper.New())
	cmd.SetArgs([]string{"serve", "--data-dir", t.TempDir(), "--log-level", "error"})
	cmd.SetOut(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret is required")
}
