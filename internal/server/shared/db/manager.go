// Package db selects and owns the credential-store backend. The manager
// is the single place that knows whether accounts live in Postgres or in
// process memory; business logic only ever sees users.Repository.
package db

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
)

// Manager owns the store connection lifecycle. Users must not be called
// before Open succeeds; Close is safe on every exit path.
type Manager interface {
	Open(ctx context.Context) error
	Close() error
	Users() users.Repository
}

// NewManager picks the implementation from the DSN: config.InMemoryDSN
// runs the in-process store, anything else is treated as a Postgres DSN.
func NewManager(dsn string, logger logging.Logger) Manager {
	if dsn == config.InMemoryDSN {
		return NewInMemoryManager()
	}
	return NewPostgresManager(dsn, logger)
}
