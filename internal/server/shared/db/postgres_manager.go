package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

type PostgresManager struct {
	dsn    string
	db     *sql.DB
	users  users.Repository
	logger logging.Logger
}

func NewPostgresManager(dsn string, logger logging.Logger) *PostgresManager {
	return &PostgresManager{dsn: dsn, logger: logger.With("module", "db_manager")}
}

// Open connects, waits for the database to answer pings, and applies
// migrations. The ping retries with backoff so a database that is still
// starting does not fail the boot.
func (m *PostgresManager) Open(ctx context.Context) error {
	db, err := sql.Open("pgx", m.dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}

	b := retry.WithMaxRetries(5, retry.NewExponential(200*time.Millisecond))
	if err := retry.Do(ctx, b, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			m.logger.Warn(ctx, "db not ready, retrying", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		db.Close()
		return fmt.Errorf("db ping error: %w", err)
	}

	if err := m.runMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("migration error: %w", err)
	}

	m.db = db
	m.users = users.NewPostgresRepository(db)
	return nil
}

func (m *PostgresManager) runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

func (m *PostgresManager) Close() error {
	if m.db == nil {
		return nil
	}
	return m.db.Close()
}

func (m *PostgresManager) Users() users.Repository {
	return m.users
}
