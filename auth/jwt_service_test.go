package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "petconnect_test")

	token, expires, err := svc.GenerateToken(42, "sara@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "sara@example.com", claims.Username)
	assert.Equal(t, "petconnect_test", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, "petconnect_test")

	token, _, err := svc.GenerateToken(1, "a@b.c")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorContains(t, err, "expired")
}

func TestValidateWrongKey(t *testing.T) {
	svc := NewService("secret-one", time.Hour, "petconnect_test")
	other := NewService("secret-two", time.Hour, "petconnect_test")

	token, _, err := svc.GenerateToken(1, "a@b.c")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "petconnect_test")
	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorContains(t, err, "malformed")
}
