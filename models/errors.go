package models

import "github.com/pkg/errors"

// ErrNotFound marks read use cases whose target record does not exist.
var ErrNotFound = errors.New("not found")

// AuthorizationError is returned by the authorizer, Message is safe to show to the caller.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}
