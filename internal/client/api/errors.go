package api

import (
	"errors"
	"fmt"
	"net/http"
)

// maxErrorStatus is the first status code past the 5xx range.
const maxErrorStatus = 600

// Static error definitions for better error handling.
var (
	// ErrUnsupportedMethod indicates a verb outside GET, POST, PUT and DELETE.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrInvalidBaseURL indicates that the base URL is not an absolute URL.
	ErrInvalidBaseURL = errors.New("invalid base URL")
	// ErrInvalidPath indicates that a request path could not be parsed as a URL reference.
	ErrInvalidPath = errors.New("invalid request path")
	// ErrUnsupportedParams indicates a query parameter value of an unsupported type.
	ErrUnsupportedParams = errors.New("unsupported params type")
	// ErrUnsupportedBody indicates a request body of an unsupported type.
	ErrUnsupportedBody = errors.New("unsupported body type")
	// ErrHTTPStatus matches every *HTTPError via errors.Is.
	ErrHTTPStatus = errors.New("HTTP error status")
)

// HTTPError is returned when the server answers with a 4xx or 5xx status.
type HTTPError struct {
	// Method is the verb of the failed request.
	Method string
	// URL is the resolved request URL, including the query string.
	URL string
	// StatusCode is the upstream status code.
	StatusCode int
	// Reason is the upstream reason phrase, e.g. "Not Found".
	Reason string
	// Body is the upstream response body as text.
	Body string
	// Response is the full response, body included.
	Response *Response
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	kind := "Client Error"
	if e.StatusCode >= http.StatusInternalServerError && e.StatusCode < maxErrorStatus {
		kind = "Server Error"
	}

	return fmt.Sprintf("%d %s: %s for url: %s", e.StatusCode, kind, e.Reason, e.URL)
}

// Is makes errors.Is(err, ErrHTTPStatus) true for every HTTPError.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// isErrorStatus reports whether statusCode is a 4xx or 5xx status.
func isErrorStatus(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < maxErrorStatus
}

// AsHTTPError extracts an *HTTPError from err.
func AsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}

	return nil, false
}

// IsHTTPStatus reports whether err is an *HTTPError with the given status code.
func IsHTTPStatus(err error, statusCode int) bool {
	httpErr, ok := AsHTTPError(err)

	return ok && httpErr.StatusCode == statusCode
}
