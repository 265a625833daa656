package http

import (
	"net/http"
	"slices"
	"strings"
)

// crossHostHeaders are not replayed on a redirect that leaves the original host.
//
//nolint:gochecknoglobals // Immutable lookup list.
var crossHostHeaders = []string{
	"Authorization",
	"Proxy-Authorization",
	"Www-Authenticate",
	"Cookie",
	"Cookie2",
}

// HeaderInjector is an http.RoundTripper that applies a fixed header set to every request.
// Headers already present on the request win over the fixed set.
// Credentials and cookies from the fixed set are not sent when a redirect leaves the original host.
type HeaderInjector struct {
	next    http.RoundTripper
	headers http.Header
}

// NewHeaderInjector creates a HeaderInjector. The headers are copied, so later changes
// to the caller's map do not leak into outgoing requests.
func NewHeaderInjector(next http.RoundTripper, headers map[string]string) http.RoundTripper {
	fixed := make(http.Header, len(headers))
	for name, value := range headers {
		fixed.Set(name, value)
	}

	return &HeaderInjector{
		next:    next,
		headers: fixed,
	}
}

// Headers returns a copy of the fixed header set.
func (t *HeaderInjector) Headers() http.Header {
	return t.headers.Clone()
}

// RoundTrip implements the http.RoundTripper interface.
func (t *HeaderInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if len(t.headers) == 0 {
		return t.next.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())

	crossHost := leavesOriginalHost(req)

	for name, values := range t.headers {
		if _, exists := clone.Header[name]; exists {
			continue
		}

		if crossHost && slices.Contains(crossHostHeaders, name) {
			continue
		}

		clone.Header[name] = append([]string(nil), values...)
	}

	return t.next.RoundTrip(clone)
}

// leavesOriginalHost reports whether req is a redirect hop to a host other than
// the one the redirect chain started on.
func leavesOriginalHost(req *http.Request) bool {
	if req.Response == nil || req.Response.Request == nil {
		return false
	}

	origin := req
	for origin.Response != nil && origin.Response.Request != nil {
		origin = origin.Response.Request
	}

	return !strings.EqualFold(origin.URL.Hostname(), req.URL.Hostname())
}
