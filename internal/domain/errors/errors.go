package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidBirthDate   = errors.New("invalid birth date")
	ErrForbidden          = errors.New("forbidden")
	ErrProfileCompleted   = errors.New("profile already completed")
	ErrExternalIdentity   = errors.New("external identity rejected")
)
