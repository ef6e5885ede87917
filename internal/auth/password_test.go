package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	for _, pw := range []string{"a", "correct horse battery staple", "pässwörd✓"} {
		hash, err := h.Hash(pw)
		require.NoError(t, err)

		ok, err := h.Verify(pw, hash)
		require.NoError(t, err)
		assert.True(t, ok, "password %q should verify", pw)

		ok, err = h.Verify(pw+"x", hash)
		require.NoError(t, err)
		assert.False(t, ok, "altered password %q should not verify", pw)
	}
}

func TestPasswordHasher_Salted(t *testing.T) {
	t.Parallel()

	h := NewPasswordHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	t.Parallel()

	ok, err := NewPasswordHasher(bcrypt.MinCost).Verify("pw", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewPasswordHasher_Cost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultPasswordCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewPasswordHasher(99).cost)

	hash, err := NewPasswordHasher(0).Hash("pw")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 10, cost)
}
