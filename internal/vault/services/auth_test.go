package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/secret"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/entries"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
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
CREATE TABLE IF NOT EXISTS password_entries (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  site TEXT NOT NULL,
  username TEXT NOT NULL,
  password_hash TEXT NOT NULL
);
DELETE FROM password_entries;
DELETE FROM master_password;
INSERT INTO master_password (id, password_hash, key_salt) VALUES (1, '', '');
`)
	require.NoError(t, err)
	return db
}

func masterRow(t *testing.T, db *sql.DB) (hash, salt string) {
	t.Helper()
	require.NoError(t, db.QueryRow(
		`SELECT password_hash, key_salt FROM master_password WHERE id = 1`).Scan(&hash, &salt))
	return hash, salt
}

func TestFirstRunSetup(t *testing.T) {
	db := setupDB(t, "auth_firstrun")
	svc := NewAuthService(db)
	ctx := context.Background()

	set, err := svc.IsMasterSet(ctx)
	require.NoError(t, err)
	require.False(t, set)

	require.NoError(t, svc.SetMaster(ctx, secret.NewString("hunter2")))

	set, err = svc.IsMasterSet(ctx)
	require.NoError(t, err)
	require.True(t, set)

	hash, salt := masterRow(t, db)
	require.NotEmpty(t, hash)
	require.NotEmpty(t, salt)
	require.Contains(t, hash, "$argon2id$")
	require.NotContains(t, hash, "hunter2")

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM password_entries`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestSetMaster_RefusesWhenAlreadySet(t *testing.T) {
	db := setupDB(t, "auth_twice")
	svc := NewAuthService(db)
	ctx := context.Background()

	require.NoError(t, svc.SetMaster(ctx, secret.NewString("hunter2")))
	require.Error(t, svc.SetMaster(ctx, secret.NewString("other")))
}

func TestLogin_Success(t *testing.T) {
	db := setupDB(t, "auth_login")
	svc := NewAuthService(db)
	ctx := context.Background()

	require.NoError(t, svc.SetMaster(ctx, secret.NewString("hunter2")))

	sess, err := svc.Login(ctx, secret.NewString("hunter2"))
	require.NoError(t, err)
	require.True(t, sess.SignedIn)
	require.Equal(t, "hunter2", sess.MasterPassword.Reveal())

	_, salt := masterRow(t, db)
	require.Equal(t, salt, sess.KeySalt.Reveal())
	require.False(t, sess.LastActivity.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupDB(t, "auth_wrongpw")
	svc := NewAuthService(db)
	ctx := context.Background()

	require.NoError(t, svc.SetMaster(ctx, secret.NewString("hunter2")))
	hashBefore, saltBefore := masterRow(t, db)

	// Case matters.
	_, err := svc.Login(ctx, secret.NewString("Hunter2"))
	require.ErrorIs(t, err, common.ErrIncorrectPassword)

	hashAfter, saltAfter := masterRow(t, db)
	require.Equal(t, hashBefore, hashAfter)
	require.Equal(t, saltBefore, saltAfter)
}

func TestLogin_NoMasterSet(t *testing.T) {
	db := setupDB(t, "auth_nomaster")
	svc := NewAuthService(db)

	_, err := svc.Login(context.Background(), secret.NewString("anything"))
	require.ErrorIs(t, err, common.ErrIncorrectPassword)
}

func TestLogin_GarbledVerifier(t *testing.T) {
	db := setupDB(t, "auth_garbled")
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := db.Exec(`UPDATE master_password SET password_hash = 'not-a-phc-string', key_salt = 'aa' WHERE id = 1`)
	require.NoError(t, err)

	_, err = svc.Login(ctx, secret.NewString("hunter2"))
	require.ErrorIs(t, err, common.ErrHashing)
}

func TestLogout_ReturnsSignedOutState(t *testing.T) {
	db := setupDB(t, "auth_logout")
	svc := NewAuthService(db)

	sess := svc.Logout()
	require.False(t, sess.SignedIn)
	require.True(t, sess.MasterPassword.IsEmpty())
	require.True(t, sess.KeySalt.IsEmpty())
}

func TestRotateMaster_ReEncryptsEverything(t *testing.T) {
	db := setupDB(t, "auth_rotate")
	auth := NewAuthService(db)
	entrySvc := NewEntryService(entries.NewSQLiteRepository(db))
	ctx := context.Background()

	require.NoError(t, auth.SetMaster(ctx, secret.NewString("hunter2")))
	sess, err := auth.Login(ctx, secret.NewString("hunter2"))
	require.NoError(t, err)

	require.NoError(t, entrySvc.Create(ctx, sess, &models.EntryPlain{
		Site: "example.com", Username: "alice", Password: secret.NewString("p@ss"),
	}))

	var tokenBefore string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM password_entries`).Scan(&tokenBefore))

	newSess, err := auth.RotateMaster(ctx, secret.NewString("correct horse battery staple"), sess)
	require.NoError(t, err)
	require.True(t, newSess.SignedIn)

	// The old password no longer opens the vault.
	_, err = auth.Login(ctx, secret.NewString("hunter2"))
	require.ErrorIs(t, err, common.ErrIncorrectPassword)

	// The new one does, and the plaintext survived the re-keying.
	loginSess, err := auth.Login(ctx, secret.NewString("correct horse battery staple"))
	require.NoError(t, err)

	got, err := entrySvc.List(ctx, loginSess, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "p@ss", got[0].Password.Reveal())

	// The stored token was rewritten under the new key.
	var tokenAfter string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM password_entries`).Scan(&tokenAfter))
	require.NotEqual(t, tokenBefore, tokenAfter)

	// The old session's key no longer decrypts anything.
	_, err = entrySvc.List(ctx, sess, "")
	require.ErrorIs(t, err, common.ErrAuthFailed)
}

func TestRotateMaster_AbortLeavesStoreUntouched(t *testing.T) {
	db := setupDB(t, "auth_rotate_abort")
	auth := NewAuthService(db)
	entrySvc := NewEntryService(entries.NewSQLiteRepository(db))
	ctx := context.Background()

	require.NoError(t, auth.SetMaster(ctx, secret.NewString("hunter2")))
	sess, err := auth.Login(ctx, secret.NewString("hunter2"))
	require.NoError(t, err)

	require.NoError(t, entrySvc.Create(ctx, sess, &models.EntryPlain{
		Site: "example.com", Username: "alice", Password: secret.NewString("p@ss"),
	}))
	require.NoError(t, entrySvc.Create(ctx, sess, &models.EntryPlain{
		Site: "example.org", Username: "bob", Password: secret.NewString("s3cret"),
	}))

	// Corrupt the second entry so its decryption fails mid-rotation.
	_, err = db.Exec(`UPDATE password_entries SET password_hash = 'QUJDREVGR0hJSktMTU5PUFFSUw==' WHERE id = 2`)
	require.NoError(t, err)

	hashBefore, saltBefore := masterRow(t, db)
	var token1Before string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM password_entries WHERE id = 1`).Scan(&token1Before))

	_, err = auth.RotateMaster(ctx, secret.NewString("new password"), sess)
	require.Error(t, err)
	require.ErrorIs(t, err, common.ErrAuthFailed)

	// Nothing changed: master row and every entry row are as before.
	hashAfter, saltAfter := masterRow(t, db)
	require.Equal(t, hashBefore, hashAfter)
	require.Equal(t, saltBefore, saltAfter)

	var token1After string
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM password_entries WHERE id = 1`).Scan(&token1After))
	require.Equal(t, token1Before, token1After)

	// The original session still works.
	sess2, err := auth.Login(ctx, secret.NewString("hunter2"))
	require.NoError(t, err)
	got, err := entrySvc.Get(ctx, sess2, 1)
	require.NoError(t, err)
	require.Equal(t, "p@ss", got.Password.Reveal())
}

func TestRotateMaster_RequiresSignedInSession(t *testing.T) {
	db := setupDB(t, "auth_rotate_unauth")
	auth := NewAuthService(db)

	_, err := auth.RotateMaster(context.Background(), secret.NewString("pw"), auth.Logout())
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestIsUserError(t *testing.T) {
	require.True(t, IsUserError(common.ErrIncorrectPassword))
	require.True(t, IsUserError(common.ErrNotFound))
	require.True(t, IsUserError(common.ErrUnauthenticated))
	require.False(t, IsUserError(common.ErrStore))
	require.False(t, IsUserError(common.ErrAuthFailed))
}
