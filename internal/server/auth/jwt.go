// Package auth implements the credential primitives of the server: signed
// account tokens and password hashing.
package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims includes the registered claims plus the account identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// JWTCodec issues and verifies HS256-signed, time-bounded account tokens.
// Tokens are self-verifiable: no store access is needed to check them.
type JWTCodec struct {
	secret   []byte
	validity time.Duration
}

func NewJWTCodec(secret []byte, validity time.Duration) *JWTCodec {
	return &JWTCodec{secret: secret, validity: validity}
}

// Issue signs a token for the given account id and returns it together
// with its expiry. A signing failure is a hard failure wrapping
// common.ErrInternal, never a domain outcome.
func (c *JWTCodec) Issue(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.validity)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: signing token: %v", common.ErrInternal, err)
	}

	return signed, expiresAt, nil
}

// Verify checks the signature, expiry, and presence of the account claim.
// Every failure mode collapses into common.ErrUnauthorized so callers
// cannot tell which check rejected the token.
func (c *JWTCodec) Verify(tokenString string) (string, time.Time, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", time.Time{}, common.ErrUnauthorized
	}

	return claims.UserID, claims.ExpiresAt.Time, nil
}
