package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/taskmgr-io/taskmgr/internal/modules/model"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &model.User{
		ID:       uuid.New(),
		Username: "admin",
		Role:     model.RoleAdmin,
	}

	token, err := m.Generate(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute)
	user := &model.User{ID: uuid.New(), Username: "user1", Role: model.RoleUser}

	token, err := m.Generate(user)
	assert.NoError(t, err)

	claims, err := m.Verify(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)
	user := &model.User{ID: uuid.New(), Username: "user1", Role: model.RoleUser}

	token, err := issuer.Generate(user)
	assert.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		claims, err := m.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	}
}
