package database_test

import (
	"path/filepath"
	"testing"

	"go-pos-console/pkg/config"
	"go-pos-console/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "pos.db"),
		LogLevel:   "silent",
	}

	db, err := database.Open(cfg)
	require.NoError(t, err)

	var one int
	require.NoError(t, db.Raw("SELECT 1").Scan(&one).Error)
	assert.Equal(t, 1, one)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
