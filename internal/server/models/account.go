// Package models defines the persistent and transient data structures of the
// highlight service.
package models

import "time"

// Account is a registered identity. ID is the username chosen at
// registration and is unique across the store. The secret is kept only as an
// argon2id hash with a per-account random salt, never as plaintext.
type Account struct {
	ID           string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}
