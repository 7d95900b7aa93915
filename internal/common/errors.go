// Package common defines shared constants and sentinel errors used across
// the sooldama server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Session state errors raised by the auth gate.
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAlreadyAuthenticated   = errors.New("already authenticated")

	// User errors.
	ErrNoSuchUser           = errors.New("no such user")
	ErrDuplicateEmailExists = errors.New("duplicate email exists")
	ErrPasswordNotMatch     = errors.New("password does not match")

	// Catalog errors.
	ErrProductNotFound = errors.New("product not found")
)
