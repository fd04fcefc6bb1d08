// Package server initializes and runs the account store application: it
// opens the database, applies migrations, wires the services and starts the
// HTTP API with graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/drfoodie/nutritrack/internal/logging"
	"github.com/drfoodie/nutritrack/internal/server/config"
	"github.com/drfoodie/nutritrack/internal/server/httpapi"
	"github.com/drfoodie/nutritrack/internal/server/migrations"
	"github.com/drfoodie/nutritrack/internal/server/repositories/accounts"
	"github.com/drfoodie/nutritrack/internal/server/repositories/meals"
	"github.com/drfoodie/nutritrack/internal/server/repositories/profiles"
	"github.com/drfoodie/nutritrack/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	accountService := services.NewAccountService(accounts.NewPostgresRepository(db), c)
	snapshotService := services.NewSnapshotService(
		profiles.NewPostgresRepository(db),
		meals.NewPostgresRepository(db))

	server := httpapi.NewServer(c.EndpointAddr, logger, accountService, snapshotService)

	return &App{config: c, logger: logger, db: db, server: server}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
