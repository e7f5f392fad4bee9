package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/avoronov/notka/internal/logger"
	"github.com/avoronov/notka/migrations"
)

// DB wraps the local SQLite connection used for durable client-side state.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// OpenDB opens (creating if needed) the local SQLite database at dsn and
// runs pending schema migrations. A dsn of ":memory:" yields a database
// that lives only for the duration of the process.
func OpenDB(dsn string, log *logger.Logger) (*DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create local db dir: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local db: %w", err)
	}

	db := &DB{DB: sqlDB, logger: log}
	if err = db.Migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
