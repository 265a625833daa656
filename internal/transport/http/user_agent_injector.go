package http

import (
	"net/http"

	"github.com/oshokin/basic-api-client/internal/utils"
)

// UserAgentInjector is a custom http.RoundTripper that injects a User-Agent header into HTTP requests
// that do not carry one yet.
type UserAgentInjector struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// userAgentProvider provides the User-Agent string to inject.
	userAgentProvider utils.UserAgentProvider
}

// NewUserAgentInjector creates and returns a new instance of UserAgentInjector.
func NewUserAgentInjector(next http.RoundTripper, userAgentProvider utils.UserAgentProvider) http.RoundTripper {
	return &UserAgentInjector{
		next:              next,
		userAgentProvider: userAgentProvider,
	}
}

// RoundTrip implements the http.RoundTripper interface.
func (t *UserAgentInjector) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	if req.Header.Get(userAgentHeader) != "" {
		return t.next.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set(userAgentHeader, t.userAgentProvider.GetUserAgent())

	return t.next.RoundTrip(clone)
}
