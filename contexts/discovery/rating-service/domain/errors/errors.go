package errors

import "errors"

var (
	ErrRatingNotFound     = errors.New("rating not found")
	ErrInvalidRatingInput = errors.New("invalid rating input")
	ErrCafeNotRateable    = errors.New("cafe not available for rating")
	ErrUnauthorizedActor  = errors.New("actor not allowed to modify this rating")
)
