// Package vault wires the local store: data directory bootstrap, SQLite
// connection and schema migrations.
package vault

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/vault/migrations"
)

const (
	// DefaultDirName is created under the user's home directory.
	DefaultDirName = ".password_manager"
	// DefaultDBFile is the SQLite database file inside the data directory.
	DefaultDBFile = "passwords.sqlite"
)

// DefaultDataDir resolves and creates $HOME/.password_manager.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	dir := filepath.Join(home, DefaultDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dir, nil
}

// DSN builds a read-write-create connection string for the given file path.
func DSN(path string) string {
	return "file:" + path + "?mode=rwc"
}

// RunMigrations applies the embedded forward-only migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("%w: apply migrations: %v", common.ErrStore, err)
	}
	return nil
}

// Open connects to the store at dsn and brings the schema up to date.
// The caller registers the driver (modernc.org/sqlite) with a blank import.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", common.ErrStore, err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
