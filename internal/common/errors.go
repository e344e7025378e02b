// Package common defines shared constants and sentinel errors used across
// the highlight service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Upload-specific errors.
	ErrorAccountNotFound = errors.New("account not found")
	ErrorNoFile          = errors.New("no video file provided")

	// Analyzer errors.
	ErrorMediaUnreadable = errors.New("media unreadable")
	ErrorMediaTooShort   = errors.New("video too short to generate highlights")
	ErrorAnalysisFailed  = errors.New("analysis failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
