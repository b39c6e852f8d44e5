package storage

import (
	"context"
	"path/filepath"
	"testing"

	"sheep-management/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MemoryByDefault(t *testing.T) {
	r, err := Open(context.Background(), config.StorageConfig{})
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, r.Driver)
	assert.NoError(t, r.Close())
}

func TestOpen_SQLiteCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "flock.db")

	r, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	assert.Equal(t, config.DriverSQLite, r.Driver)
	rows, err := r.Records.ListWithActivities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestOpen_HostedNeedsCredentials(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: config.DriverHosted})
	assert.Error(t, err)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "csv"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
