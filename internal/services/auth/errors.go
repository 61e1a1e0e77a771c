package auth

import "errors"

var (
	// ErrMalformedCredential means the caller sent an authorization header
	// that does not parse; it is never worth retrying as-is.
	ErrMalformedCredential = errors.New("malformed authorization header")
	ErrDuplicateCredential = errors.New("an account with that email already exists")
	// ErrInvalidCredential deliberately covers both unknown email and wrong
	// password, and any token forgery, so nothing about account existence
	// leaks to the caller.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrExpiredCredential is split out from ErrInvalidCredential so a
	// client can fall back to the refresh flow.
	ErrExpiredCredential = errors.New("expired token")
)
