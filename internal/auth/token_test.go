package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test_secret", time.Hour)

	token, err := tm.Generate("user-1", "a@example.com", "org-1")
	require.NoError(t, err)

	claims, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "org-1", claims.OrganizationID)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).Generate("user-1", "a@example.com", "")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsExpired(t *testing.T) {
	tm := NewTokenManager("test_secret", time.Hour)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tm.Generate("user-1", "a@example.com", "")
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("test_secret", time.Hour).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
