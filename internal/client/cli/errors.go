package cli

import (
	"errors"

	"github.com/dmitrijs2005/secretstash/internal/client/client"
)

var (
	errUsage           = errors.New("usage: claim <secret id>")
	errAlreadyLoggedIn = errors.New("already logged in, use logout first")
)

// describeError turns service and transport errors into one line for the user.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	default:
		return err.Error()
	}
}
