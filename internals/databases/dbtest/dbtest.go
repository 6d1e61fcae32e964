// Package dbtest menyiapkan *gorm.DB untuk test repository:
// sqlmock untuk unit test, Postgres asli bila TEST_DATABASE_DSN diset.
package dbtest

import (
	"context"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"duomonggo_backend/internals/databases/migrations"
)

func NewMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var tables = []string{
	"multiplayer_sessions", "user_progress", "enrollments",
	"answers", "questions", "courses", "accounts",
}

// OpenPostgres: skip kalau TEST_DATABASE_DSN kosong. Schema di-migrate lalu dikosongkan.
func OpenPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, migrations.Up(context.Background(), sqlDB))

	for _, tbl := range tables {
		require.NoError(t, db.Exec("TRUNCATE TABLE "+tbl+" CASCADE").Error)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
