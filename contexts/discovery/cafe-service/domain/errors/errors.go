package errors

import "errors"

var (
	ErrCafeNotFound        = errors.New("cafe not found")
	ErrInvalidCafeInput    = errors.New("invalid cafe input")
	ErrDuplicateCafe       = errors.New("duplicate cafe")
	ErrInvalidSearchBounds = errors.New("invalid search bounding box")
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)
