package auth

import "errors"

var (
	ErrEmailTaken         = errors.New("email or phone already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrValidation         = errors.New("invalid auth request")
)
