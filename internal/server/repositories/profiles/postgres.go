package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drfoodie/nutritrack/internal/common"
	"github.com/drfoodie/nutritrack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, accountID string) ([]byte, error) {
	query :=
		`SELECT doc FROM profiles
		 WHERE account_id = $1
		 `

	var doc []byte
	err := r.db.QueryRowContext(ctx, query, accountID).Scan(&doc)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return doc, nil
}

func (r *PostgresRepository) Save(ctx context.Context, accountID string, doc []byte) error {
	query :=
		`INSERT INTO profiles (account_id, doc, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (account_id) DO UPDATE SET doc = excluded.doc, updated_at = now()
		 `

	if _, err := r.db.ExecContext(ctx, query, accountID, doc); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
