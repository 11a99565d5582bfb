// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/Kariqs/agromarket-api/initializers"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory sqlite database. The pool is limited
// to one connection because every sqlite memory connection is its own
// database.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := initializers.OpenDB("sqlite", "file::memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db))
	return db
}
