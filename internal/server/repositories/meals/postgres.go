package meals

import (
	"context"
	"fmt"

	"github.com/drfoodie/nutritrack/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, accountID, id string, ts int64, doc []byte) error {
	query :=
		`INSERT INTO meals (id, account_id, ts, doc)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (account_id, id) DO UPDATE SET ts = excluded.ts, doc = excluded.doc
		 `

	if _, err := r.db.ExecContext(ctx, query, id, accountID, ts, doc); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context, accountID string) ([][]byte, error) {
	query :=
		`SELECT doc FROM meals
		 WHERE account_id = $1
		 ORDER BY ts DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, accountID, id string) error {
	// no rows-affected check: double-delete is idempotent
	query := `DELETE FROM meals WHERE account_id = $1 AND id = $2`
	if _, err := r.db.ExecContext(ctx, query, accountID, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
