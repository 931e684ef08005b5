package catalog

import "errors"

var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid catalog request")
	ErrDuplicate  = errors.New("name already taken")
	ErrForbidden  = errors.New("forbidden")
)
