package meals

import (
	"context"
	"fmt"

	"github.com/drfoodie/nutritrack/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, id string, ts int64, doc []byte) error {
	query := `INSERT INTO meals (id, ts, doc) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET ts = excluded.ts, doc = excluded.doc`
	if _, err := r.db.ExecContext(ctx, query, id, ts, string(doc)); err != nil {
		return fmt.Errorf("failed to upsert meal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([][]byte, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT doc FROM meals ORDER BY ts DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select meals: %w", err)
	}
	defer rows.Close()

	var result [][]byte
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		result = append(result, []byte(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	// no rows-affected check: double-delete is idempotent
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meals`); err != nil {
		return fmt.Errorf("failed to clear meals: %w", err)
	}
	return nil
}
