package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStoreUnavailable   = errors.New("user store unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMailTransport      = errors.New("mail transport failed")
	ErrTokenInvalid       = errors.New("token invalid or expired")
)
