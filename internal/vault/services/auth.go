// Package services contains the application services of the vault core:
// master-password authentication and encrypted entry management.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/secret"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/master"
	"github.com/dmitrijs2005/passvault/internal/vault/session"
)

// AuthService manages the master credential and the sign-in lifecycle.
//
// Contract:
//   - IsMasterSet: whether first-run setup has happened.
//   - SetMaster: establish the master password when none exists.
//   - Login: verify a candidate password and produce a signed-in session.
//   - RotateMaster: change the master password, atomically re-encrypting
//     every stored entry under the new key.
//   - Logout: the default signed-out session.
type AuthService interface {
	IsMasterSet(ctx context.Context) (bool, error)
	SetMaster(ctx context.Context, newPassword *secret.Buffer) error
	Login(ctx context.Context, candidate *secret.Buffer) (*session.Session, error)
	RotateMaster(ctx context.Context, newPassword *secret.Buffer, current *session.Session) (*session.Session, error)
	Logout() *session.Session
}

type authService struct {
	db  *sql.DB
	now func() time.Time
}

// NewAuthService constructs an AuthService over the given database.
func NewAuthService(db *sql.DB) AuthService {
	return &authService{db: db, now: time.Now}
}

func (a *authService) masterRepo(db dbx.DBTX) master.Repository {
	return master.NewSQLiteRepository(db)
}

func (a *authService) IsMasterSet(ctx context.Context) (bool, error) {
	cred, err := a.masterRepo(a.db).Get(ctx)
	if err != nil {
		return false, err
	}
	return cred.IsSet(), nil
}

// SetMaster establishes the master credential on first run: a PHC verifier
// hash with a fresh internal salt, plus a fresh key salt, persisted in one
// transaction. There are no entries to re-encrypt yet.
func (a *authService) SetMaster(ctx context.Context, newPassword *secret.Buffer) error {
	cred, err := a.masterRepo(a.db).Get(ctx)
	if err != nil {
		return err
	}
	if cred.IsSet() {
		return fmt.Errorf("master password is already set")
	}

	verifier, err := argon2id.CreateHash(newPassword.Reveal(), argon2id.DefaultParams)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	keySalt, err := cryptox.NewKeySalt()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return a.masterRepo(tx).Update(ctx, verifier, keySalt)
	})
}

// Login verifies the candidate against the stored PHC verifier. On success
// it returns a signed-in session retaining the password and the persisted
// key salt; the AES key itself is derived on demand per operation.
func (a *authService) Login(ctx context.Context, candidate *secret.Buffer) (*session.Session, error) {
	cred, err := a.masterRepo(a.db).Get(ctx)
	if err != nil {
		return nil, err
	}
	if !cred.IsSet() {
		return nil, common.ErrIncorrectPassword
	}

	match, err := argon2id.ComparePasswordAndHash(candidate.Reveal(), cred.VerifierHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrHashing, err)
	}
	if !match {
		return nil, common.ErrIncorrectPassword
	}

	return &session.Session{
		SignedIn:       true,
		MasterPassword: candidate.Clone(),
		KeySalt:        secret.NewString(cred.KeySalt),
		LastActivity:   a.now(),
	}, nil
}

// RotateMaster changes the master password. Within a single transaction it
// decrypts every entry under the current session's key, computes a new
// verifier hash and key salt, updates the master row and re-encrypts every
// entry under the new key. Any failure rolls the store back bit-identical
// to its pre-call state. The returned session is bound to the new
// password and salt; the caller installs it only after this returns nil.
func (a *authService) RotateMaster(ctx context.Context, newPassword *secret.Buffer, current *session.Session) (*session.Session, error) {
	if current == nil || !current.SignedIn {
		return nil, common.ErrUnauthenticated
	}

	oldKey, err := cryptox.DeriveKey(current.MasterPassword, current.KeySalt)
	if err != nil {
		return nil, err
	}
	defer secret.WipeBytes(oldKey)

	newSalt, err := cryptox.NewKeySalt()
	if err != nil {
		return nil, err
	}
	newSaltBuf := secret.NewString(newSalt)

	newKey, err := cryptox.DeriveKey(newPassword, newSaltBuf)
	if err != nil {
		newSaltBuf.Wipe()
		return nil, err
	}
	defer secret.WipeBytes(newKey)

	verifier, err := argon2id.CreateHash(newPassword.Reveal(), argon2id.DefaultParams)
	if err != nil {
		newSaltBuf.Wipe()
		return nil, fmt.Errorf("%w: %v", common.ErrHashing, err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.masterRepo(tx).Update(ctx, verifier, newSalt); err != nil {
			return err
		}

		repo := entries.NewSQLiteRepository(tx)
		rows, err := repo.GetAll(ctx)
		if err != nil {
			return err
		}

		for _, row := range rows {
			plain, err := cryptox.DecryptToken(row.Token, oldKey)
			if err != nil {
				return fmt.Errorf("entry %d: %w", row.ID, err)
			}
			token, err := cryptox.EncryptToken(plain, newKey)
			plain.Wipe()
			if err != nil {
				return err
			}
			if err := repo.Update(ctx, row.ID, row.Site, row.Username, token); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		newSaltBuf.Wipe()
		return nil, err
	}

	return &session.Session{
		SignedIn:       true,
		MasterPassword: newPassword.Clone(),
		KeySalt:        newSaltBuf,
		LastActivity:   a.now(),
	}, nil
}

// Logout returns the default signed-out state; the caller replaces its
// session with it (and thereby wipes the old one).
func (a *authService) Logout() *session.Session {
	return session.SignedOut()
}

// IsUserError reports whether err is a routine, user-visible condition
// (wrong password, missing entry, signed-out session) rather than
// corruption or an I/O failure.
func IsUserError(err error) bool {
	return errors.Is(err, common.ErrIncorrectPassword) ||
		errors.Is(err, common.ErrNotFound) ||
		errors.Is(err, common.ErrUnauthenticated)
}
