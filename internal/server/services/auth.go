// Package services contains server-side business logic. This file
// implements AuthService, which orchestrates account creation, login, and
// token authentication over the credential store, the password hasher,
// the token codec, and the two lookup caches.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/cache"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
)

// bearerPrefix is stripped from incoming Authorization values before the
// token is looked at.
const bearerPrefix = "Bearer "

// TokenCodec creates and verifies the signed, time-bounded tokens issued
// at login.
type TokenCodec interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID string, expiresAt time.Time, err error)
}

// TokenCache is the shared fast-path index from issued token to account
// id. Implementations absorb their own failures; callers see only hit or
// miss.
type TokenCache interface {
	GetToken(ctx context.Context, token string) (userID string, ok bool)
	SetToken(ctx context.Context, token, userID string, ttl time.Duration)
}

// LoginResult is returned by a successful Login.
type LoginResult struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
}

// AuthService provides the public credential operations:
//   - CreateUser: create accounts with uniqueness enforcement
//   - Login: verify credentials and mint a token
//   - Authenticate: resolve a token to an account id
//   - GetUser: cached account lookup for authenticated requests
//
// Domain judgments (conflict, bad credentials, bad token) come back as the
// sentinel errors in package common; indeterminate system state wraps
// common.ErrInternal.
type AuthService struct {
	repo       users.Repository
	hasher     auth.PasswordHasher
	codec      TokenCodec
	localCache *cache.Local
	tokenCache TokenCache
	logger     logging.Logger
}

// NewAuthService constructs an AuthService. tokenCache may be nil, which
// disables the shared fast path and leaves signature verification as the
// only authentication route.
func NewAuthService(repo users.Repository, hasher auth.PasswordHasher, codec TokenCodec,
	localCache *cache.Local, tokenCache TokenCache, logger logging.Logger) *AuthService {
	return &AuthService{
		repo:       repo,
		hasher:     hasher,
		codec:      codec,
		localCache: localCache,
		tokenCache: tokenCache,
		logger:     logger.With("module", "auth_service"),
	}
}

// CreateUser hashes the password and persists a new account. A duplicate
// email resolves to common.ErrAlreadyExists, malformed input to a
// common.ValidationError; any other store failure is a hard failure.
func (s *AuthService) CreateUser(ctx context.Context, email, password, name string) (string, error) {
	if password == "" {
		return "", common.NewValidationError("password", "is required")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("%w: hashing password: %v", common.ErrInternal, err)
	}

	user := &models.User{Email: email, PasswordHash: hash, Name: name}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		var ve *common.ValidationError
		if errors.Is(err, common.ErrAlreadyExists) || errors.As(err, &ve) {
			return "", err
		}
		return "", fmt.Errorf("%w: creating account: %v", common.ErrInternal, err)
	}

	s.logger.Info(ctx, "account created", "userId", created.ID)
	return created.ID, nil
}

// Login verifies the email/password pair and issues a token. An unknown
// email and a wrong password are deliberately the same outcome,
// common.ErrInvalidCredentials, to avoid account enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.lookupByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: account lookup: %v", common.ErrInternal, err)
	}

	match, err := s.hasher.Compare(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("%w: password check: %v", common.ErrInternal, err)
	}
	if !match {
		return nil, common.ErrInvalidCredentials
	}

	token, expiresAt, err := s.codec.Issue(user.ID)
	if err != nil {
		// codec failures already wrap common.ErrInternal
		return nil, err
	}

	if s.tokenCache != nil {
		s.tokenCache.SetToken(ctx, token, user.ID, time.Until(expiresAt))
	}

	return &LoginResult{UserID: user.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to an account id. The shared cache
// is the fast path; on miss the token's signature and expiry are checked
// and the cache is backfilled with the remaining lifetime. Every rejection
// is common.ErrUnauthorized, never a hard failure.
func (s *AuthService) Authenticate(ctx context.Context, bearerToken string) (string, error) {
	token := strings.TrimSpace(strings.TrimPrefix(bearerToken, bearerPrefix))
	if token == "" {
		return "", common.ErrUnauthorized
	}

	if s.tokenCache != nil {
		if userID, ok := s.tokenCache.GetToken(ctx, token); ok {
			return userID, nil
		}
	}

	userID, expiresAt, err := s.codec.Verify(token)
	if err != nil {
		return "", common.ErrUnauthorized
	}

	if s.tokenCache != nil {
		// backfill with the remaining lifetime, never a fresh window
		s.tokenCache.SetToken(ctx, token, userID, time.Until(expiresAt))
	}

	return userID, nil
}

// IssueToken mints a token for an already-resolved account id. It is used
// internally and by setup collaborators.
func (s *AuthService) IssueToken(userID string) (string, time.Time, error) {
	return s.codec.Issue(userID)
}

// GetUser returns the account for an authenticated id, served from the
// local cache when possible.
func (s *AuthService) GetUser(ctx context.Context, id string) (*models.User, error) {
	if user, ok := s.localCache.Get(id); ok {
		return user, nil
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: account lookup: %v", common.ErrInternal, err)
	}

	s.cacheUser(user)
	return user, nil
}

// lookupByEmail consults the local cache first and falls back to the
// store, caching confirmed reads under both the email and id keys. Only
// store-confirmed records enter the cache, which preserves read-after-write
// for login after account creation.
func (s *AuthService) lookupByEmail(ctx context.Context, email string) (*models.User, error) {
	key := models.NormalizeEmail(email)
	if user, ok := s.localCache.Get(key); ok {
		return user, nil
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	s.cacheUser(user)
	return user, nil
}

func (s *AuthService) cacheUser(user *models.User) {
	s.localCache.Set(models.NormalizeEmail(user.Email), user)
	s.localCache.Set(user.ID, user)
}
