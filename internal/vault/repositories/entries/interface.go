// Package entries persists encrypted credential entries.
package entries

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// Repository describes CRUD operations over password_entries rows. All rows
// carry encrypted tokens only; decryption happens in the service layer.
type Repository interface {
	// GetAll returns every row in ascending id order.
	GetAll(ctx context.Context) ([]models.EntryEncrypted, error)

	// GetByID returns a single row, or common.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.EntryEncrypted, error)

	// Insert adds a new row and fills in the assigned id.
	Insert(ctx context.Context, e *models.EntryEncrypted) error

	// Update overwrites site, username and token of an existing row.
	// Returns common.ErrNotFound if the row does not exist.
	Update(ctx context.Context, id int64, site, username, token string) error

	// DeleteByID removes a row. Returns common.ErrNotFound if absent.
	DeleteByID(ctx context.Context, id int64) error
}
