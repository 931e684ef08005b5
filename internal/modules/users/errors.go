package users

import "errors"

var (
	ErrNotFound   = errors.New("user not found")
	ErrValidation = errors.New("invalid user update")
	ErrForbidden  = errors.New("forbidden")
	ErrSelfAction = errors.New("cannot perform this action on own account")
	ErrDuplicate  = errors.New("email or phone already taken")
)
