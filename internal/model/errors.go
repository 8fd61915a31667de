package model

import "errors"

var (
	// ErrNotFound is returned when an entity does not exist or is owned by
	// another user.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUser is returned on registration with an email already
	// present in the active credential backend.
	ErrDuplicateUser = errors.New("user already exists")
	// ErrInvalidCredentials is returned when login email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingToken is returned when no bearer token is present at all.
	ErrMissingToken = errors.New("missing token")
	// ErrMissingOwner is returned when an ingestion request reaches the
	// pipeline without a bound owner.
	ErrMissingOwner = errors.New("missing record owner")
	// ErrMalformedCoordinates is returned when the coordinates field is not
	// valid JSON. This is the only input-validation rejection of the
	// ingestion pipeline.
	ErrMalformedCoordinates = errors.New("malformed coordinates")
)
