// Package common defines the sentinel errors shared across the workshop
// service layers. Callers match these values with errors.Is.
package common

import "errors"

var (
	// ErrInvalidInput marks malformed caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidFilter marks malformed list/query options.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrUnauthorized marks a missing, invalid, or expired token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden marks an authenticated caller that is not permitted.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound marks an absent resource. Reads of private scripts by
	// non-owners return this same value so that callers cannot distinguish
	// denial from non-existence.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState marks a violated data-integrity assumption, such as a
	// role code outside the known set.
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyExists marks a uniqueness violation on registration.
	ErrAlreadyExists = errors.New("already exists")
)
