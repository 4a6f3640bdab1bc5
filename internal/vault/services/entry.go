package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/secret"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
	"github.com/dmitrijs2005/passvault/internal/vault/repositories/entries"
	"github.com/dmitrijs2005/passvault/internal/vault/session"
)

// EntryService manages credential entries. Every operation demands a
// signed-in session and fails with common.ErrUnauthenticated otherwise;
// the AES key is derived from the session per call and wiped before return.
type EntryService interface {
	// List returns decrypted entries in row-id order whose site or
	// username contains query (case-sensitive; empty matches all).
	// A decryption failure on any row fails the whole call: a corrupt or
	// wrong-key vault must not be silently hidden.
	List(ctx context.Context, sess *session.Session, query string) ([]models.EntryPlain, error)

	// Get returns a single decrypted entry, or common.ErrNotFound.
	Get(ctx context.Context, sess *session.Session, id int64) (*models.EntryPlain, error)

	// Create encrypts the password and inserts a new row.
	Create(ctx context.Context, sess *session.Session, entry *models.EntryPlain) error

	// Update re-encrypts with a fresh nonce and overwrites the row.
	Update(ctx context.Context, sess *session.Session, id int64, entry *models.EntryPlain) error

	// Delete removes the row.
	Delete(ctx context.Context, sess *session.Session, id int64) error
}

type entryService struct {
	repo entries.Repository
}

// NewEntryService constructs an EntryService over the given repository.
func NewEntryService(repo entries.Repository) EntryService {
	return &entryService{repo: repo}
}

func sessionKey(sess *session.Session) ([]byte, error) {
	if sess == nil || !sess.SignedIn {
		return nil, common.ErrUnauthenticated
	}
	return cryptox.DeriveKey(sess.MasterPassword, sess.KeySalt)
}

func matches(e *models.EntryEncrypted, query string) bool {
	return query == "" ||
		strings.Contains(e.Site, query) ||
		strings.Contains(e.Username, query)
}

func (s *entryService) List(ctx context.Context, sess *session.Session, query string) ([]models.EntryPlain, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return nil, err
	}
	defer secret.WipeBytes(key)

	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.EntryPlain, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		if !matches(row, query) {
			continue
		}
		plain, err := cryptox.DecryptToken(row.Token, key)
		if err != nil {
			models.WipeAll(result)
			return nil, err
		}
		result = append(result, models.EntryPlain{
			ID:       row.ID,
			Site:     row.Site,
			Username: row.Username,
			Password: plain,
		})
	}
	return result, nil
}

func (s *entryService) Get(ctx context.Context, sess *session.Session, id int64) (*models.EntryPlain, error) {
	key, err := sessionKey(sess)
	if err != nil {
		return nil, err
	}
	defer secret.WipeBytes(key)

	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plain, err := cryptox.DecryptToken(row.Token, key)
	if err != nil {
		return nil, err
	}
	return &models.EntryPlain{
		ID:       row.ID,
		Site:     row.Site,
		Username: row.Username,
		Password: plain,
	}, nil
}

func (s *entryService) Create(ctx context.Context, sess *session.Session, entry *models.EntryPlain) error {
	key, err := sessionKey(sess)
	if err != nil {
		return err
	}
	defer secret.WipeBytes(key)

	token, err := cryptox.EncryptToken(entry.Password, key)
	if err != nil {
		return err
	}
	return s.repo.Insert(ctx, &models.EntryEncrypted{
		Site:     entry.Site,
		Username: entry.Username,
		Token:    token,
	})
}

func (s *entryService) Update(ctx context.Context, sess *session.Session, id int64, entry *models.EntryPlain) error {
	key, err := sessionKey(sess)
	if err != nil {
		return err
	}
	defer secret.WipeBytes(key)

	token, err := cryptox.EncryptToken(entry.Password, key)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, id, entry.Site, entry.Username, token)
}

func (s *entryService) Delete(ctx context.Context, sess *session.Session, id int64) error {
	if sess == nil || !sess.SignedIn {
		return common.ErrUnauthenticated
	}
	return s.repo.DeleteByID(ctx, id)
}
