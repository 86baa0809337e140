package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// NetworkError reports that no response was received.
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, ErrUnavailable, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }

// HTTPError is a non-2xx response other than 401. Error returns the server's
// message so it can be shown to the user as is.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

// AuthError is a 401 response. By the time it is returned the stored
// credentials are gone.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Is(target error) bool { return target == ErrUnauthorized }

// StatusCode returns the HTTP status carried by err, or 0 for transport
// failures and foreign errors.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.Status
	}
	var aerr *AuthError
	if errors.As(err, &aerr) {
		return 401
	}
	return 0
}
