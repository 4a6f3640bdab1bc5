package master

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:masterrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS master_password (
  id INTEGER PRIMARY KEY CHECK (id = 1),
  password_hash TEXT NOT NULL DEFAULT '',
  key_salt TEXT NOT NULL DEFAULT ''
);
DELETE FROM master_password;
INSERT INTO master_password (id, password_hash, key_salt) VALUES (1, '', '');
`)
	require.NoError(t, err)
	return db
}

func TestGet_SeededRowIsEmpty(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	cred, err := repo.Get(context.Background())
	require.NoError(t, err)
	require.False(t, cred.IsSet())
	require.Empty(t, cred.KeySalt)
}

func TestUpdate_RoundTrip(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, "$argon2id$v=19$m=65536,t=1,p=2$c2FsdA$aGFzaA", "aabbccdd"))

	cred, err := repo.Get(ctx)
	require.NoError(t, err)
	require.True(t, cred.IsSet())
	require.Equal(t, "aabbccdd", cred.KeySalt)
}

func TestUpdate_MissingRow(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`DELETE FROM master_password`)
	require.NoError(t, err)

	repo := NewSQLiteRepository(db)
	err = repo.Update(context.Background(), "h", "s")
	require.ErrorIs(t, err, common.ErrStore)
}

func TestGet_ClosedDB(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	repo := NewSQLiteRepository(db)
	_, err := repo.Get(context.Background())
	require.ErrorIs(t, err, common.ErrStore)
}
