package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMalformedResponse is returned when a 2xx body cannot be decoded or does
// not match the endpoint's response model.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError reports a non-2xx response.
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string // server-provided "error" field, if any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s %s returned status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api %s %s returned status %d", e.Method, e.Path, e.Status)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 response.
func IsUnauthorized(err error) bool {
	return StatusCode(err) == http.StatusUnauthorized
}

// ServerMessage returns the server-provided error text carried by err, if any.
func ServerMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
