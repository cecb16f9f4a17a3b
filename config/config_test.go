package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
	assert.Equal(t, filepath.Join("data", "tenants"), cfg.TenantsDir())
	assert.Equal(t, filepath.Join("data", "directory.db"), cfg.DirectoryPath())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"http": {"address": "0.0.0.0", "port": 8080},
		"storage": {"data_dir": "/var/lib/shelfdb"},
		"auth": {"jwt_secret": "from-file", "token_ttl": "2h"}
	}`), 0o600))

	t.Setenv("SHELFDB_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "/var/lib/shelfdb", cfg.Storage.DataDir)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	bad := *cfg
	bad.Storage.DataDir = ""
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.HTTP.Port = 70000
	assert.Error(t, bad.Validate())

	_, err = Load(viper.New(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
