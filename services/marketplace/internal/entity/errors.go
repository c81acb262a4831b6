package entity

import "errors"

var (
	// ErrNotFound covers missing rows and unpublished content.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned when an operation requires a signed-in user.
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	// ErrInvalidAmount rejects negative prices and purchase amounts.
	ErrInvalidAmount = errors.New("amount must be zero or greater")
	ErrInvalidInput  = errors.New("invalid input")
)
