package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, "password", hash)
	assert.True(t, h.Verify("password", hash))
	assert.False(t, h.Verify("Password", hash))
	assert.False(t, h.Verify("", hash))
}

func TestBcryptHasher_Salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("password")
	require.NoError(t, err)
	second, err := h.Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("password", first))
	assert.True(t, h.Verify("password", second))
}

func TestBcryptHasher_VerifyRejectsGarbageHash(t *testing.T) {
	assert.False(t, NewBcryptHasher(bcrypt.MinCost).Verify("password", "not-a-hash"))
}

func TestNewBcryptHasher_InvalidCostUsesDefault(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(100).cost)
	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
}
