package services

import "errors"

// Service-level errors. Handlers map these onto HTTP statuses; nothing below
// the handler layer writes a response.
var (
	ErrRideNotFound       = errors.New("ride not found")
	ErrRideNotModifiable  = errors.New("ride cannot be modified in its current status")
	ErrActiveRideConflict = errors.New("rider already has an active ride")
	ErrInvalidCategory    = errors.New("unknown ride category")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserSuspended      = errors.New("account is suspended")
)
