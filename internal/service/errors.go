package service

import "errors"

var (
	// ErrNotFound covers both a missing resource and a resource on a board the
	// caller is not a member of. The two are never told apart.
	ErrNotFound = errors.New("not found")

	// ErrRejected is returned when input breaks a business rule, such as an
	// unknown label color.
	ErrRejected = errors.New("rejected")

	// ErrInvalidCredentials is returned by the user service when an email,
	// password or refresh token does not check out.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrConflict is returned when the write would duplicate an existing record.
	ErrConflict = errors.New("conflict")
)
