package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/services"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth", &client.AuthError{Message: "Token expired"}, "Session expired: Token expired. Please log in again."},
		{"http", &client.HTTPError{Status: 409, Message: "Already a member"}, "Already a member"},
		{"network", &client.NetworkError{Method: "GET", Path: "/projects", Err: errors.New("refused")}, "Service unavailable, check your connection and try again."},
		{"breaker open", &client.NetworkError{Method: "GET", Path: "/projects", Err: client.ErrCircuitOpen}, "Service unavailable, requests are paused for a while."},
		{"no challenge", services.ErrNoPendingChallenge, "No login is waiting for a code. Use 'login' first."},
		{"other", fmt.Errorf("%w: usage: project <id>", errUsage), "invalid arguments: usage: project <id>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describe(tt.err))
		})
	}
}
