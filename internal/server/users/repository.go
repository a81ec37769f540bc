// Package users contains the durable account store and its
// implementations. The store owns field validation and the
// case-insensitive uniqueness constraint on email.
package users

import (
	"context"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the durable account store.
//
// Create validates the record, persists it, and returns
// common.ErrAlreadyExists when another account already holds the email
// (case-insensitively). The uniqueness check is enforced by the store's
// own indexing, not by a prior read, so two concurrent creations with the
// same email resolve deterministically: one success, one conflict.
//
// GetByEmail and GetByID return common.ErrNotFound on a miss.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
