package adapter

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return token
}

func TestUsernameFromToken(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "alice"})

	username, err := UsernameFromToken(token)

	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestUsernameFromToken_NoSubject(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"aud": "notes"})

	_, err := UsernameFromToken(token)

	require.Error(t, err)
}

func TestUsernameFromToken_Garbage(t *testing.T) {
	_, err := UsernameFromToken("not-a-jwt")
	require.Error(t, err)
}
