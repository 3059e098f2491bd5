package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher_CostBounds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.MinCost, NewBcryptHasher(bcrypt.MinCost).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(bcrypt.MaxCost+1).cost)
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	passwords := []string{"password123", "x", "correct horse battery staple", "パスワード", strings.Repeat("a", 60)}

	for _, p := range passwords {
		hash, err := h.Hash(p)
		require.NoError(t, err)
		assert.NotEqual(t, p, hash, "hash must not equal plaintext")
		assert.True(t, h.Verify(p, hash), "verify(%q, hash(%q)) should be true", p, p)
	}
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("password123")
	require.NoError(t, err)

	assert.False(t, h.Verify("password124", hash))
	assert.False(t, h.Verify("", hash))
	assert.False(t, h.Verify("password123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("password123", ""))
}

func TestBcryptHasher_Salted(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each hash carries its own salt")
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestBcryptHasher_LongPasswords(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)

	for _, n := range []int{72, 73, 1024, 4096} {
		p := strings.Repeat("a", n)
		hash, err := h.Hash(p)
		require.NoError(t, err, "length %d", n)
		assert.True(t, h.Verify(p, hash), "length %d should verify", n)
	}
}

func TestBcryptHasher_LongPasswordsShareNoPrefixMatch(t *testing.T) {
	t.Parallel()

	h := NewBcryptHasher(bcrypt.MinCost)
	prefix := strings.Repeat("a", 100)

	hash, err := h.Hash(prefix + "1")
	require.NoError(t, err)

	assert.False(t, h.Verify(prefix+"2", hash), "bytes past 72 must still count")
	assert.False(t, h.Verify(prefix, hash))
}
