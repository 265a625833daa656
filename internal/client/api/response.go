package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Response is the outcome of a successful (status below 400) request.
// Body holds exactly the bytes the server sent.
type Response struct {
	// Method is the verb that was sent.
	Method string
	// URL is the final request URL, after params were applied and redirects were followed.
	URL *url.URL
	// StatusCode is the HTTP status code.
	StatusCode int
	// Reason is the reason phrase of the status line.
	Reason string
	// Header holds the response headers.
	Header http.Header
	// Body is the full response body.
	Body []byte
	// Raw is the underlying response. Its Body has already been read and
	// replaced with a reader over the same bytes.
	Raw *http.Response
}

// Text returns the body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Status returns the status line without the protocol, e.g. "200 OK".
func (r *Response) Status() string {
	return strconv.Itoa(r.StatusCode) + " " + r.Reason
}

// reasonPhrase extracts the reason phrase from the status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)

	if reason, found := strings.CutPrefix(resp.Status, code); found {
		if reason = strings.TrimSpace(reason); reason != "" {
			return reason
		}
	}

	return http.StatusText(resp.StatusCode)
}
