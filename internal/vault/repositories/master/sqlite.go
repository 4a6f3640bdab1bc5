package master

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.MasterCredential, error) {
	query := `select password_hash, key_salt from master_password where id = 1`
	row := r.db.QueryRowContext(ctx, query)

	m := &models.MasterCredential{}
	if err := row.Scan(&m.VerifierHash, &m.KeySalt); err != nil {
		return nil, fmt.Errorf("%w: read master credential: %v", common.ErrStore, err)
	}
	return m, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, verifierHash, keySalt string) error {
	query := `update master_password set password_hash = ?, key_salt = ? where id = 1`
	res, err := r.db.ExecContext(ctx, query, verifierHash, keySalt)
	if err != nil {
		return fmt.Errorf("%w: update master credential: %v", common.ErrStore, err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStore, err)
	}
	if ra != 1 {
		return fmt.Errorf("%w: master row missing (affected %d rows)", common.ErrStore, ra)
	}
	return nil
}
