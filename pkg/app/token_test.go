package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerateAndParse(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})

	token, err := tm.Generate(42, "alice", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	user, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), user.UID)
	assert.Equal(t, "alice", user.Nickname)
	assert.Equal(t, "127.0.0.1", user.IP)
	assert.Equal(t, DefaultTokenIssuer, user.Issuer)
}

func TestTokenParseWrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "key-a", Expiry: time.Hour})
	token, err := tm.Generate(1, "bob", "")
	require.NoError(t, err)

	_, err = ParseTokenWithKey(token, "key-b")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "key", Expiry: -time.Minute})
	token, err := tm.Generate(1, "bob", "")
	require.NoError(t, err)

	assert.Error(t, tm.Validate(token))
}
