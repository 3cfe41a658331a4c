package network

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrStalled reports a download that stopped receiving data.
var ErrStalled = errors.New("download stalled")

// FetchError reports a response with a status other than 200.
// It is never retried.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Unauthorized reports whether the platform rejected the session cookie.
func (e *FetchError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
