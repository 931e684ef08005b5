package booking

import "errors"

var (
	ErrNotFound         = errors.New("booking or tour not found")
	ErrValidation       = errors.New("validation error")
	ErrInvalidState     = errors.New("operation not valid for current state")
	ErrCapacityExceeded = errors.New("not enough capacity")
	ErrDuplicate        = errors.New("duplicate booking")
	ErrForbidden        = errors.New("forbidden")
)
