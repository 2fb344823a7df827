package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignParseRoundTrip(t *testing.T) {
	SetSecret("test-secret")

	token, err := Sign("user-1", "user", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "user", claims.Role)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	SetSecret("secret-a")
	token, err := Sign("user-1", "user", time.Hour)
	require.NoError(t, err)

	SetSecret("secret-b")
	_, err = Parse(token)
	require.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	SetSecret("test-secret")
	token, err := Sign("user-1", "user", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token)
	require.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	SetSecret("test-secret")
	_, err := Parse("not.a.token")
	require.Error(t, err)
}
