package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_IssueAndVerify(t *testing.T) {
	codec := NewJWTCodec([]byte("test-secret"), 14*24*time.Hour)

	token, expiresAt, err := codec.Issue("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(14*24*time.Hour), expiresAt, 5*time.Second)

	userID, gotExpiry, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.WithinDuration(t, expiresAt, gotExpiry, time.Second)
}

func TestJWTCodec_Verify_Failures(t *testing.T) {
	codec := NewJWTCodec([]byte("test-secret"), time.Hour)

	validToken, _, err := codec.Issue("user-1")
	require.NoError(t, err)

	expired, _, err := NewJWTCodec([]byte("test-secret"), -time.Minute).Issue("user-1")
	require.NoError(t, err)

	// signed with a different key
	foreign, _, err := NewJWTCodec([]byte("other-secret"), time.Hour).Issue("user-1")
	require.NoError(t, err)

	// structurally valid but carries no account claim
	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	// no expiry at all
	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: "user-1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "garbage"},
		{name: "empty", token: ""},
		{name: "expired", token: expired},
		{name: "wrong signature", token: foreign},
		{name: "missing user claim", token: noClaim},
		{name: "missing expiry claim", token: noExpiry},
		{name: "tampered", token: validToken + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := codec.Verify(tt.token)
			// every failure mode must be indistinguishable
			require.True(t, errors.Is(err, common.ErrUnauthorized), "got %v", err)
		})
	}
}
