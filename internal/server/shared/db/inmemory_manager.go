package db

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/users"
)

// InMemoryManager serves the in-process store. Open and Close are no-ops;
// the repository lives and dies with the process.
type InMemoryManager struct {
	users users.Repository
}

func NewInMemoryManager() *InMemoryManager {
	return &InMemoryManager{users: users.NewInMemoryRepository()}
}

func (m *InMemoryManager) Open(ctx context.Context) error {
	return nil
}

func (m *InMemoryManager) Close() error {
	return nil
}

func (m *InMemoryManager) Users() users.Repository {
	return m.users
}
