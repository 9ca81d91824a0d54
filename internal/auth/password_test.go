package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	digest, err := hasher.Hash("secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, digest)
	assert.NotEqual(t, "secret123", digest)

	assert.True(t, hasher.Verify("secret123", digest))
	assert.False(t, hasher.Verify("secret124", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestPasswordHasher_DistinctSalts(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	d1, err := hasher.Hash("same-password")
	assert.NoError(t, err)
	d2, err := hasher.Hash("same-password")
	assert.NoError(t, err)

	// fresh salt per call
	assert.NotEqual(t, d1, d2)
	assert.True(t, hasher.Verify("same-password", d1))
	assert.True(t, hasher.Verify("same-password", d2))
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	hasher := NewPasswordHasher(DefaultBcryptCost)

	assert.False(t, hasher.Verify("anything", ""))
	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("anything", "$2a$broken"))
}

func TestNewPasswordHasher_CostOutOfRange(t *testing.T) {
	// out-of-range costs fall back to the default instead of failing later
	hasher := NewPasswordHasher(99)
	digest, err := hasher.Hash("pw")
	assert.NoError(t, err)
	assert.True(t, hasher.Verify("pw", digest))

	hasher = NewPasswordHasher(-1)
	digest, err = hasher.Hash("pw")
	assert.NoError(t, err)
	assert.True(t, hasher.Verify("pw", digest))
}
