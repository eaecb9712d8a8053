package service

import "errors"

// Request-level failures surfaced to the caller. Anything else that
// escapes a service method is an internal error.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPaymentNotFound = errors.New("payment not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailRequired   = errors.New("email is required")
	ErrInvalidMonth    = errors.New("month must be in YYYY-MM format")
	ErrInvalidPayment  = errors.New("invalid payment")
)
