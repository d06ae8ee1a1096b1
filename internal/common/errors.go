// Package common defines shared constants and sentinel errors used across
// client and server layers of AuthKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("account already exists")

	// Service-level errors.
	ErrorValidation         = errors.New("validation error")
	ErrorInvalidCredentials = errors.New("invalid credentials")
	ErrorStore              = errors.New("store error")
	ErrPoolExhausted        = errors.New("store handle pool exhausted")

	// Token verification errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Machine-readable error classes reported to callers.
const (
	ClassValidation         = "VALIDATION_ERROR"
	ClassConflict           = "CONFLICT_ERROR"
	ClassInvalidCredentials = "INVALID_CREDENTIALS"
	ClassTokenExpired       = "TOKEN_EXPIRED"
	ClassTokenInvalid       = "TOKEN_INVALID"
	ClassNotFound           = "NOT_FOUND"
	ClassResourceExhausted  = "RESOURCE_EXHAUSTED"
	ClassStore              = "STORE_ERROR"
)

// ClassOf maps err onto its error class. Errors that match none of the
// sentinels above are reported as ClassStore, the generic failure class.
func ClassOf(err error) string {
	switch {
	case errors.Is(err, ErrorValidation):
		return ClassValidation
	case errors.Is(err, ErrorAlreadyExists):
		return ClassConflict
	case errors.Is(err, ErrorInvalidCredentials):
		return ClassInvalidCredentials
	case errors.Is(err, ErrTokenExpired):
		return ClassTokenExpired
	case errors.Is(err, ErrInvalidToken):
		return ClassTokenInvalid
	case errors.Is(err, ErrorNotFound):
		return ClassNotFound
	case errors.Is(err, ErrPoolExhausted):
		return ClassResourceExhausted
	default:
		return ClassStore
	}
}
