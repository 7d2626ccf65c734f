package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrPasswordMismatch      = errors.New("password mismatch")
	ErrNotConfigured         = errors.New("service not configured")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnparsableResponse    = errors.New("unparsable extraction response")
)
