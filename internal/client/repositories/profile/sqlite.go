package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/dbx"
)

// SQLiteRepository implements Repository over a single-row table. The CHECK
// constraint on id keeps the snapshot to exactly one document.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, doc []byte) error {
	query := `INSERT INTO profile (id, doc) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`
	if _, err := r.db.ExecContext(ctx, query, string(doc)); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context) ([]byte, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM profile WHERE id = 1`).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return []byte(doc), nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	return nil
}
