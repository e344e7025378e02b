package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/sportclip/highlightd/internal/common"
)

// argon2id parameters; moderate cost suitable for an interactive login path.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32

	saltLen = 32
)

// NewSalt returns a fresh random per-account salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(saltLen)
}

// HashPassword derives an argon2id hash of password with the given salt.
// Only the hash and salt are ever stored; the plaintext is discarded.
func HashPassword(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// VerifyPassword reports whether candidate hashes to hash under salt,
// in constant time over the hash comparison.
func VerifyPassword(candidate string, salt, hash []byte) bool {
	derived := HashPassword(candidate, salt)
	return subtle.ConstantTimeCompare(derived, hash) == 1
}
