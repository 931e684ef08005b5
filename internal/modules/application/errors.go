package application

import "errors"

var (
	ErrNotFound     = errors.New("application not found")
	ErrValidation   = errors.New("invalid application request")
	ErrInvalidState = errors.New("application already reviewed")
	ErrDuplicate    = errors.New("pending application or company already exists")
	ErrForbidden    = errors.New("forbidden")
)
