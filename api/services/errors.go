package services

import (
	"net/http"

	"github.com/pkg/errors"
)

const (
	MsgUserNotFound    = "User not found"
	MsgProductNotFound = "Product not found"
)

// HTTPError is a failure that knows which HTTP status it should produce.
type HTTPError struct {
	Message string
	Status  int
}

func (e *HTTPError) Error() string {
	return e.Message
}

// StatusCode returns Status, or 500 when it was left unset.
func (e *HTTPError) StatusCode() int {
	if e.Status == 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// NewHTTPError returns an *HTTPError annotated with the caller's stack.
func NewHTTPError(status int, message string) error {
	return errors.WithStack(&HTTPError{Message: message, Status: status})
}

func errUserNotFound() error {
	return NewHTTPError(http.StatusNotFound, MsgUserNotFound)
}

func errProductNotFound() error {
	return NewHTTPError(http.StatusNotFound, MsgProductNotFound)
}
