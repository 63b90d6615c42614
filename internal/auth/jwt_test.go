package auth

import (
	"testing"
	"time"

	"github.com/mmynk/budgetbook/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("super-secret", time.Hour)
	user := &models.User{ID: 42, Username: "admin"}

	tok, err := m.Generate(user)
	require.NoError(t, err)

	claims, err := m.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.NotEmpty(t, claims.ID)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestJWTManager_UniqueTokenIDs(t *testing.T) {
	m := NewJWTManager("k", time.Hour)
	user := &models.User{ID: 1, Username: "admin"}

	t1, err := m.Generate(user)
	require.NoError(t, err)
	t2, err := m.Generate(user)
	require.NoError(t, err)

	c1, err := m.Validate(t1)
	require.NoError(t, err)
	c2, err := m.Validate(t2)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("k", time.Minute)
	tok, err := m.Generate(&models.User{ID: 1, Username: "admin"})
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	tok, err := NewJWTManager("right", time.Hour).Generate(&models.User{ID: 1, Username: "admin"})
	require.NoError(t, err)

	_, err = NewJWTManager("wrong", time.Hour).Validate(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Malformed(t *testing.T) {
	_, err := NewJWTManager("k", time.Hour).Validate("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
