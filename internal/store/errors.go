package store

import "errors"

var (
	ErrHistoryDisabled = errors.New("price history store is disabled")
	ErrInvalidLimit    = errors.New("history limit must be positive")
)
