package service

import "errors"

// Sentinel errors the controllers map onto HTTP statuses.
var (
	// ErrValidation wraps malformed input the store never sees.
	ErrValidation = errors.New("validation error")

	// ErrClientNotFound covers both a missing client and a client owned by a
	// different account; callers cannot distinguish the two.
	ErrClientNotFound = errors.New("client not found")

	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidLogin    = errors.New("invalid email or password")
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")
)
