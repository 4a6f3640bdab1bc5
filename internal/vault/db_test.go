package vault

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestOpen_CreatesSchemaAndSeedsMasterRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.sqlite")

	db, err := Open(context.Background(), DSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM master_password`).Scan(&n))
	require.Equal(t, 1, n, "exactly one master row must be seeded")

	var hash, salt string
	require.NoError(t, db.QueryRow(`SELECT password_hash, key_salt FROM master_password WHERE id = 1`).Scan(&hash, &salt))
	require.Empty(t, hash)
	require.Empty(t, salt)

	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM password_entries`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestRunMigrations_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwords.sqlite")
	ctx := context.Background()

	db, err := Open(ctx, DSN(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// A second pass must be a no-op thanks to the goose ledger; the seed
	// insert in particular must not run twice.
	require.NoError(t, RunMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM master_password`).Scan(&n))
	require.Equal(t, 1, n)
}
