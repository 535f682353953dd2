package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/mech-ai/internal/db"
)

// NewTestDB opens a migrated sqlite database private to the test.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "mech_ai_test.db")
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: db.NewGormLogger(zaptest.NewLogger(t)),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func StrPtr(s string) *string { return &s }

func IntPtr(i int) *int { return &i }

func FloatPtr(f float64) *float64 { return &f }
