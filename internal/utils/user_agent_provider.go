package utils

//go:generate $MOCKGEN -source=user_agent_provider.go -destination=mocks/user_agent_provider_mock.go

import (
	"strings"

	"github.com/oshokin/basic-api-client/internal/version"
)

// UserAgentProvider supplies the User-Agent value injected into outgoing requests.
type UserAgentProvider interface {
	// GetUserAgent returns a User-Agent string.
	GetUserAgent() string
}

// StaticUserAgentProvider returns the same User-Agent for every request.
type StaticUserAgentProvider struct {
	userAgent string
}

// NewStaticUserAgentProvider creates a provider for userAgent.
// A blank userAgent falls back to the application's own product token.
func NewStaticUserAgentProvider(userAgent string) UserAgentProvider {
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	return &StaticUserAgentProvider{userAgent: userAgent}
}

// GetUserAgent returns a User-Agent string.
func (p *StaticUserAgentProvider) GetUserAgent() string {
	return p.userAgent
}
