package services

import "errors"

// Domain errors. Routes translate these into envelope error codes; anything
// else that bubbles up is an infrastructure failure.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrInvalidAction      = errors.New("invalid action")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidReference   = errors.New("invalid reference")
	ErrAlreadyRated       = errors.New("already rated")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWorkerNotVerified  = errors.New("worker not verified")
)
