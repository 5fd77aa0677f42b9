package client

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("").Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestStaticTokenExpired(t *testing.T) {
	expired := signedToken(t, time.Now().Add(-time.Hour))
	_, err := StaticToken(expired).Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	valid := signedToken(t, time.Now().Add(time.Hour))
	token, err := StaticToken(valid).Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, valid, token)
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), ".studycopilot", "session"))

	_, err := store.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, store.Save("  my-token  \n"))
	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "my-token", token)

	info, err := os.Stat(store.Path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	require.NoError(t, store.Clear())
	_, err = store.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	// Clearing an already-cleared session is not an error.
	require.NoError(t, store.Clear())
}

func TestSessionStoreExpiredToken(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, store.Save(signedToken(t, time.Now().Add(-time.Minute))))

	_, err := store.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestSessionStoreEmptyFile(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session"))
	require.NoError(t, os.WriteFile(store.Path, []byte("   \n"), 0600))

	_, err := store.Token(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestOpaqueTokenNeverExpires(t *testing.T) {
	assert.False(t, expired("not-a-jwt"))
	assert.False(t, expired(""))
}
