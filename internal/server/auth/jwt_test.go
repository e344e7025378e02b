package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportclip/highlightd/internal/common"
)

func TestTokenRoundtrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := GetAccountIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "alice", accountID)
}

func TestTokenWrongKey(t *testing.T) {
	token, err := GenerateToken("alice", []byte("key-one"), time.Hour)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(token, []byte("key-two"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestTokenExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateToken("alice", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(token, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenGarbage(t *testing.T) {
	_, err := GetAccountIDFromToken("not-a-token", []byte("test-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
