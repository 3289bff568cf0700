package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrServiceUnavailable means the data service cannot be reached yet, usually
// because no endpoint or token is configured. Dependent operations are not attempted.
var ErrServiceUnavailable = errors.New("data service unavailable")

// ValidationError is caught locally before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RemoteError is a completed call that the service rejected.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

func IsNotFound(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
