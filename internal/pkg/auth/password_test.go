package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher()

	hash, err := h.Hash("admin123")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"), "expected a bcrypt hash, got %q", hash)
	assert.NotEqual(t, "admin123", hash)

	assert.True(t, h.Verify("admin123", hash))
	assert.False(t, h.Verify("wrong", hash))
	assert.False(t, h.Verify("admin123", "not-a-hash"))
}

func TestPasswordHasher_UniqueSalts(t *testing.T) {
	h := NewPasswordHasher()

	a, err := h.Hash("mismo")
	assert.NoError(t, err)
	b, err := h.Hash("mismo")
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}
