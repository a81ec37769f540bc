package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashIsSaltedAndVerifiable(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	h1, err := h.Hash("pw")
	require.NoError(t, err)
	h2, err := h.Hash("pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", h1)
	// fresh salt per call: identical plaintext, different hashes
	assert.NotEqual(t, h1, h2)

	ok, err := h.Compare("pw", h1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("pw", h2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_Compare_MismatchIsNotAnError(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	ok, err := h.Compare("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_Compare_MalformedHashIsAnError(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	_, err := h.Compare("pw", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestNewBcryptHasher_DefaultsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
