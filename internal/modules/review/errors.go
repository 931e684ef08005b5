package review

import "errors"

var (
	ErrNotFound   = errors.New("review target not found")
	ErrValidation = errors.New("invalid review request")
	ErrDuplicate  = errors.New("review already exists for this target")
	ErrForbidden  = errors.New("forbidden")
)
