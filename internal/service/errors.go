// internal/service/errors.go
// Common errors returned across the service layer.

package service

import "errors"

var (
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("access denied")
)
