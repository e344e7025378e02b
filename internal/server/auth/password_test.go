package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPasswordDeterministicPerSalt(t *testing.T) {
	salt := NewSalt()

	h1 := HashPassword("pw1", salt)
	h2 := HashPassword("pw1", salt)
	assert.Equal(t, h1, h2)

	// different salt, different hash
	h3 := HashPassword("pw1", NewSalt())
	assert.NotEqual(t, h1, h3)
}

func TestVerifyPassword(t *testing.T) {
	salt := NewSalt()
	hash := HashPassword("pw1", salt)

	assert.True(t, VerifyPassword("pw1", salt, hash))
	assert.False(t, VerifyPassword("wrong", salt, hash))
	assert.False(t, VerifyPassword("", salt, hash))
}

func TestHashIsNotPlaintext(t *testing.T) {
	salt := NewSalt()
	hash := HashPassword("pw1", salt)

	assert.NotContains(t, string(hash), "pw1")
	assert.Len(t, hash, argonKeyLen)
}
