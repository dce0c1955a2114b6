package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := New(bcrypt.MinCost)
	passwords := []string{"secret1", "p@ss w0rd", "ünïcödé-123", "x"}

	for _, pw := range passwords {
		digest, err := h.Hash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, digest)
		assert.True(t, h.Verify(pw, digest))
		assert.False(t, h.Verify(pw+"!", digest))
	}
}

func TestHasher_SaltsEveryDigest(t *testing.T) {
	t.Parallel()

	h := New(bcrypt.MinCost)
	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_VerifyGarbageDigest(t *testing.T) {
	t.Parallel()

	assert.False(t, New(bcrypt.MinCost).Verify("secret", "not-a-bcrypt-digest"))
}

func TestNew_OutOfRangeCostFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, New(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, New(99).Cost)
	assert.Equal(t, bcrypt.MinCost, New(bcrypt.MinCost).Cost)
}
