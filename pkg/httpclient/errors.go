package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidBaseURL is returned when the client base URL is empty or not http(s).
	ErrInvalidBaseURL = errors.New("httpclient: invalid base URL")

	// ErrInvalidConfig is returned when a configuration document cannot be parsed.
	ErrInvalidConfig = errors.New("httpclient: invalid config")

	// ErrInvalidResponseType is returned when the requested response type is
	// unknown or cannot be decoded into the result type. No request is sent.
	ErrInvalidResponseType = errors.New("httpclient: invalid response type")

	// ErrInvalidRequest is returned when the HTTP request cannot be built.
	ErrInvalidRequest = errors.New("httpclient: invalid request")

	// ErrEncodeFailed is returned when the request body cannot be encoded.
	ErrEncodeFailed = errors.New("httpclient: failed to encode request body")

	// ErrFetchFailed is returned when the request could not be completed
	// (network error, timeout, unreadable body).
	ErrFetchFailed = errors.New("httpclient: request failed")

	// ErrRequestFailed is returned when the server answers with a non-2xx status.
	// The joined *StatusError carries the response details.
	ErrRequestFailed = errors.New("httpclient: request returned non-success status")

	// ErrDecodeFailed is returned when the response body cannot be decoded.
	ErrDecodeFailed = errors.New("httpclient: failed to decode response")
)

// StatusError describes a non-2xx response.
type StatusError struct {
	Header     http.Header
	Method     string
	URL        string
	Status     string
	Body       []byte
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status=%d", e.Method, e.URL, e.StatusCode)
}

// StatusCode returns the HTTP status carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	code, ok := StatusCode(err)
	return ok && code == http.StatusNotFound
}
