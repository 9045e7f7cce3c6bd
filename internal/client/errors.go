package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the server could not be reached.
	ErrUnavailable = errors.New("unable to connect to server, please check your connection")

	// ErrServer indicates the server answered with a 5xx status.
	ErrServer = errors.New("server error, please try again later")

	// ErrUnexpected covers responses the client does not understand.
	ErrUnexpected = errors.New("an unexpected error occurred")
)

// APIError is returned for 4xx responses. Message carries the server's
// explanation when it sent one.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 404
}
