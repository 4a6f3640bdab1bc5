// Package master persists the singleton master-credential row.
package master

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// Repository describes access to the master_password singleton row (id=1).
type Repository interface {
	// Get returns the current master credential. The row always exists
	// (seeded by migration); before first-run setup both fields are empty.
	Get(ctx context.Context) (*models.MasterCredential, error)

	// Update overwrites the verifier hash and key salt of row id=1.
	// Callers that also touch entries must bind the repository to a
	// transaction so the whole change commits or rolls back together.
	Update(ctx context.Context, verifierHash, keySalt string) error
}
