package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom("", env(nil))
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 10*time.Second, cfg.Storage.Hosted.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_DSNImpliesPostgres(t *testing.T) {
	cfg, err := LoadFrom("", env(map[string]string{"DB_DSN": "postgres://localhost/sheep"}))
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
}

func TestLoadFrom_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
storage:
  driver: sqlite
  sqlite_path: /tmp/flock.db
  hosted:
    timeout: 3s
log:
  level: debug
  format: json
`), 0o600))

	cfg, err := LoadFrom(path, env(map[string]string{
		"PORT":        "7000",
		"SQLITE_PATH": "/data/sheep.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/data/sheep.db", cfg.Storage.SQLitePath)
	assert.Equal(t, 3*time.Second, cfg.Storage.Hosted.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFrom_Invalid(t *testing.T) {
	_, err := LoadFrom("", env(map[string]string{"STORAGE_DRIVER": "mongo"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFrom("", env(map[string]string{"STORAGE_DRIVER": "hosted"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFrom("", env(map[string]string{"HOSTED_TIMEOUT": "soon"}))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	assert.Error(t, err)
}
