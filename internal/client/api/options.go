package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/oshokin/basic-api-client/internal/metrics"
	http_transport "github.com/oshokin/basic-api-client/internal/transport/http"
)

// Option configures a client at construction.
type Option func(*options)

type options struct {
	timeout      time.Duration
	verification http_transport.Verification
	logger       *zap.Logger
	metrics      *metrics.Metrics
	transport    http.RoundTripper
	userAgent    string
	maxLogLength uint64
}

func defaultOptions() options {
	return options{
		timeout:      http_transport.DefaultTimeout,
		verification: http_transport.VerifyDisabled(),
	}
}

// WithTimeout sets the per-request timeout. Non-positive values keep the default of 60 seconds.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithTLSVerification sets how server certificates are verified.
// Verification is disabled unless this option says otherwise.
func WithTLSVerification(verification http_transport.Verification) Option {
	return func(o *options) {
		o.verification = verification
	}
}

// WithLogger routes the client's own log records to l instead of the global logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records every dispatched request in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTransport replaces the base transport. TLS verification settings are not applied to it.
func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithUserAgent sets the User-Agent sent when the default headers carry none.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithMaxLogLength caps the size of request/response dumps logged at debug level.
func WithMaxLogLength(maxLogLength uint64) Option {
	return func(o *options) {
		o.maxLogLength = maxLogLength
	}
}
