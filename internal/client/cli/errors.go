package cli

import (
	"errors"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

var (
	errLoginRequired  = errors.New("please log in first")
	errAdminOnly      = errors.New("this command is available to admins only")
	errSessionLoading = errors.New("session is still loading, try again")
	errUsage          = errors.New("invalid arguments")
)

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	var (
		authErr *client.AuthError
		httpErr *client.HTTPError
		netErr  *client.NetworkError
	)
	switch {
	case errors.As(err, &authErr):
		return "Session expired: " + authErr.Message + ". Please log in again."
	case errors.Is(err, client.ErrCircuitOpen):
		return "Service unavailable, requests are paused for a while."
	case errors.As(err, &netErr):
		return "Service unavailable, check your connection and try again."
	case errors.As(err, &httpErr):
		return httpErr.Message
	case errors.Is(err, services.ErrNoPendingChallenge):
		return "No login is waiting for a code. Use 'login' first."
	default:
		return err.Error()
	}
}
