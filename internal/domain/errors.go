package domain

import "errors"

var (
	// ErrGameNotFound signals a missing catalog game.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidFilter signals a malformed filter value.
	ErrInvalidFilter = errors.New("invalid filter")
)
