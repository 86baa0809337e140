package services

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedResponse means a 2xx login or verification answer had
	// neither a token/user pair nor a second-factor challenge.
	ErrMalformedResponse = errors.New("malformed authentication response")

	ErrNoPendingChallenge   = errors.New("no pending second-factor challenge")
	ErrSecondFactorRejected = errors.New("second-factor code rejected")
)

// UsageError is the panic value for using a session manager that was never
// provisioned. It signals a wiring bug, not a runtime condition.
type UsageError struct {
	Op     string
	Reason string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("services: %s: %s", e.Op, e.Reason)
}
