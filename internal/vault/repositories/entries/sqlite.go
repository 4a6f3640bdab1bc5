package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/vault/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx). Re-keying binds it to the transaction that also updates the
// master credential.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.EntryEncrypted, error) {
	query := `select id, site, username, password_hash from password_entries order by id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: select entries: %v", common.ErrStore, err)
	}
	defer rows.Close()

	var result []models.EntryEncrypted
	for rows.Next() {
		var item models.EntryEncrypted
		if err := rows.Scan(&item.ID, &item.Site, &item.Username, &item.Token); err != nil {
			return nil, fmt.Errorf("%w: scan entry: %v", common.ErrStore, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate entries: %v", common.ErrStore, err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.EntryEncrypted, error) {
	query := `select id, site, username, password_hash from password_entries where id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	e := &models.EntryEncrypted{}
	if err := row.Scan(&e.ID, &e.Site, &e.Username, &e.Token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: read entry: %v", common.ErrStore, err)
	}
	return e, nil
}

func (r *SQLiteRepository) Insert(ctx context.Context, e *models.EntryEncrypted) error {
	query := `insert into password_entries (site, username, password_hash) values (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, e.Site, e.Username, e.Token)
	if err != nil {
		return fmt.Errorf("%w: insert entry: %v", common.ErrStore, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("%w: last insert id: %v", common.ErrStore, err)
	}
	e.ID = id
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, site, username, token string) error {
	query := `update password_entries set site = ?, username = ?, password_hash = ? where id = ?`
	res, err := r.db.ExecContext(ctx, query, site, username, token, id)
	if err != nil {
		return fmt.Errorf("%w: update entry: %v", common.ErrStore, err)
	}
	return requireOneRow(res)
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id int64) error {
	query := `delete from password_entries where id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: delete entry: %v", common.ErrStore, err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected: %v", common.ErrStore, err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}
