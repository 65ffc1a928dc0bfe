package tracker

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("tracker unreachable")

	// ErrUserNotFound indicates a username did not resolve to a user key.
	ErrUserNotFound = errors.New("tracker user not found")
)

// StatusError is returned for any non-2xx tracker response.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: tracker returned status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: tracker returned status %d: %s", e.Op, e.StatusCode, e.Body)
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
