// Package app implements the application business logic.
package app

import "errors"

// Business-logic level errors.
var (
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrInvalidParams = errors.New("invalid parameters")
)
