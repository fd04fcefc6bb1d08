// Package storage opens the client's local SQLite database, runs the
// embedded goose migrations and wires the repositories.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/drfoodie/nutritrack/internal/client/migrations"
	"github.com/drfoodie/nutritrack/internal/client/repositories/meals"
	"github.com/drfoodie/nutritrack/internal/client/repositories/metadata"
	"github.com/drfoodie/nutritrack/internal/client/repositories/profile"

	_ "modernc.org/sqlite"
)

// Repositories bundles the snapshot repositories backed by one database.
type Repositories struct {
	Profile  profile.Repository
	Meals    meals.Repository
	Metadata metadata.Repository
	DB       *sql.DB
}

// RunMigrations applies pending goose migrations from the embedded FS.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the snapshot database at dsn,
// migrates it and returns the repository set.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Profile:  profile.NewSQLiteRepository(db),
		Meals:    meals.NewSQLiteRepository(db),
		Metadata: metadata.NewSQLiteRepository(db),
		DB:       db,
	}, nil
}
