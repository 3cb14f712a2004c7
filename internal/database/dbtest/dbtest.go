// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gudang/internal/config"
	"gudang/internal/database"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Config returns a configuration pointing at a fresh, private in-memory SQLite
// database with foreign keys enforced.
func Config() *config.Config {
	return &config.Config{
		DBDriver:       "sqlite",
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		DBLogLevel:     "silent",
		Locale:         "en",
		SearchScope:    "all",
	}
}

// Open returns a migrated database that is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(Config())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(db); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// FailReads makes every query on table that runs outside a transaction fail
// with err, until the returned func is called.
func FailReads(t testing.TB, db *gorm.DB, table string, err error) (restore func()) {
	t.Helper()

	var enabled atomic.Bool
	enabled.Store(true)
	name := "dbtest:fail_reads_" + uuid.NewString()
	callback := func(tx *gorm.DB) {
		if !enabled.Load() || tx.Statement.Table != table {
			return
		}
		if _, inTx := tx.Statement.ConnPool.(gorm.TxCommitter); inTx {
			return
		}
		tx.AddError(err)
	}
	if regErr := db.Callback().Query().Before("gorm:query").Register(name, callback); regErr != nil {
		t.Fatalf("failed to register query callback: %v", regErr)
	}
	return func() {
		enabled.Store(false)
	}
}
