// Package models holds the persisted domain records shared between the
// repositories and services.
package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// User is a persisted account record.
//
// Email is unique across all accounts, compared case-insensitively.
// PasswordHash is a bcrypt-derived value; the plaintext password is never
// stored. CreatedAt and UpdatedAt are set by the store on persist.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the write-time invariants of the record and reports the
// first violated field as a common.ValidationError.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Email) == "" {
		return common.NewValidationError("email", "is required")
	}
	addr, err := mail.ParseAddress(u.Email)
	if err != nil || addr.Address != u.Email {
		return common.NewValidationError("email", "does not match email grammar")
	}
	if strings.TrimSpace(u.Name) == "" {
		return common.NewValidationError("name", "is required")
	}
	if u.PasswordHash == "" {
		return common.NewValidationError("password", "is required")
	}
	return nil
}

// NormalizeEmail folds an email address for uniqueness checks and cache
// keys. Postgres enforces the same folding with a LOWER(email) index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
