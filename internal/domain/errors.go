package domain

import "errors"

var (
	// ErrValidation marks caller-supplied input that failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an order id that does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrUnauthorized is returned by the authorization gate. The message
	// literal is part of the channel contract and is sent to clients as-is.
	ErrUnauthorized = errors.New("Unauthorized")
)
