package service

import "errors"

// Domain errors for auth and book flows. The handler layer owns the mapping
// to HTTP statuses and user-facing messages; anything not listed here is
// treated as an internal failure.
var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordTooShort = errors.New("password too short")
	ErrEmailTaken       = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot tell which one occurred.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrTitleAuthorRequired = errors.New("title and author are required")
	ErrInvalidStatus       = errors.New("invalid reading status")
	ErrBookNotFound        = errors.New("book not found")
)
