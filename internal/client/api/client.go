package api

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/oshokin/basic-api-client/internal/logger"
	"github.com/oshokin/basic-api-client/internal/metrics"
	http_transport "github.com/oshokin/basic-api-client/internal/transport/http"
	"github.com/oshokin/basic-api-client/internal/utils"
)

// Client defines the verb-level surface of the API client.
type Client interface {
	// BaseURL returns the URL every path is resolved against.
	BaseURL() string
	// Do validates verb and dispatches the request. Unsupported verbs fail before any I/O.
	Do(ctx context.Context, verb, path string, params, data any) (*Response, error)
	// Get sends a GET request.
	Get(ctx context.Context, path string, params any) (*Response, error)
	// Post sends a POST request.
	Post(ctx context.Context, path string, params, data any) (*Response, error)
	// Update sends a PUT request.
	Update(ctx context.Context, path string, params, data any) (*Response, error)
	// Delete sends a DELETE request. A body is allowed.
	Delete(ctx context.Context, path string, params, data any) (*Response, error)
}

// ClientImpl implements the Client interface.
type ClientImpl struct {
	// baseURL is the parsed base URL.
	baseURL *url.URL
	// headers is the fixed header set applied to every request.
	headers http.Header
	// timeout is the per-request timeout.
	timeout time.Duration
	// verification is the TLS verification setting.
	verification http_transport.Verification
	// session carries the connection pool and cookie jar shared by every call.
	session *http.Client
	// logger overrides the context/global logger when set.
	logger *zap.SugaredLogger
	// metrics is optional.
	metrics *metrics.Metrics
}

// NewClient creates a client bound to baseURL that sends headers on every request.
// The base URL must be absolute. TLS verification is disabled unless configured otherwise.
func NewClient(baseURL string, headers map[string]string, opts ...Option) (*ClientImpl, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if !parsedBaseURL.IsAbs() || parsedBaseURL.Host == "" {
		return nil, fmt.Errorf("%w: %q must be absolute", ErrInvalidBaseURL, baseURL)
	}

	session, err := newSession(headers, &o)
	if err != nil {
		return nil, err
	}

	client := &ClientImpl{
		baseURL:      parsedBaseURL,
		headers:      toHeader(headers),
		timeout:      o.timeout,
		verification: o.verification,
		session:      session,
		metrics:      o.metrics,
	}

	if o.logger != nil {
		client.logger = o.logger.Sugar()
	}

	return client, nil
}

// newSession builds the shared HTTP client:
// fixed headers -> User-Agent -> debug dumps -> base transport, plus a cookie jar.
func newSession(headers map[string]string, o *options) (*http.Client, error) {
	cookies, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	base := o.transport
	if base == nil {
		base, err = http_transport.NewBaseTransport(o.verification)
		if err != nil {
			return nil, fmt.Errorf("failed to create transport: %w", err)
		}
	}

	return &http.Client{
		Transport: http_transport.NewHeaderInjector(
			http_transport.NewUserAgentInjector(
				http_transport.NewLogTransport(base, o.maxLogLength),
				utils.NewStaticUserAgentProvider(o.userAgent)),
			headers),
		Jar:     cookies,
		Timeout: o.timeout,
	}, nil
}

// BaseURL returns the URL every path is resolved against.
func (c *ClientImpl) BaseURL() string {
	return c.baseURL.String()
}

// Headers returns a copy of the fixed header set.
func (c *ClientImpl) Headers() http.Header {
	return c.headers.Clone()
}

// Timeout returns the per-request timeout.
func (c *ClientImpl) Timeout() time.Duration {
	return c.timeout
}

// Verification returns the TLS verification setting.
func (c *ClientImpl) Verification() http_transport.Verification {
	return c.verification
}

// Close releases idle pooled connections. The client stays usable.
func (c *ClientImpl) Close() {
	c.session.CloseIdleConnections()
}

// Get sends a GET request.
func (c *ClientImpl) Get(ctx context.Context, path string, params any) (*Response, error) {
	return c.dispatch(ctx, MethodGet, path, params, nil)
}

// Post sends a POST request.
func (c *ClientImpl) Post(ctx context.Context, path string, params, data any) (*Response, error) {
	return c.dispatch(ctx, MethodPost, path, params, data)
}

// Update sends a PUT request.
func (c *ClientImpl) Update(ctx context.Context, path string, params, data any) (*Response, error) {
	return c.dispatch(ctx, MethodPut, path, params, data)
}

// Delete sends a DELETE request. A body is allowed.
func (c *ClientImpl) Delete(ctx context.Context, path string, params, data any) (*Response, error) {
	return c.dispatch(ctx, MethodDelete, path, params, data)
}

// Do validates verb and dispatches the request. Unsupported verbs fail before any I/O.
func (c *ClientImpl) Do(ctx context.Context, verb, path string, params, data any) (*Response, error) {
	method, err := ParseMethod(verb)
	if err != nil {
		return nil, err
	}

	return c.dispatch(ctx, method, path, params, data)
}

// ResolveURL resolves path against the base URL with RFC 3986 reference resolution:
// a relative path lands under the base URL's directory, an absolute path replaces
// the base path, and an absolute URL replaces the base entirely.
func (c *ClientImpl) ResolveURL(path string) (*url.URL, error) {
	reference, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	return c.baseURL.ResolveReference(reference), nil
}

func (c *ClientImpl) dispatch(
	ctx context.Context,
	method Method,
	path string,
	params any,
	data any,
) (*Response, error) {
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMethod, method)
	}

	target, err := c.ResolveURL(path)
	if err != nil {
		return nil, err
	}

	if err = applyParams(target, params); err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(data)
	if err != nil {
		return nil, err
	}

	log := c.log(ctx)
	log.Debugf("%s: %s", method, target)

	request, err := http.NewRequestWithContext(ctx, method.String(), target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// A configured Content-Type wins over the one implied by the body.
	if contentType != "" && c.headers.Get("Content-Type") == "" {
		request.Header.Set("Content-Type", contentType)
	}

	startTime := time.Now()

	response, err := c.session.Do(request)
	if err != nil {
		c.metrics.ObserveRequest(method.String(), 0, time.Since(startTime))

		return nil, err
	}

	defer response.Body.Close() //nolint:errcheck // Body is fully read below.

	payload, err := io.ReadAll(response.Body)

	c.metrics.ObserveRequest(method.String(), response.StatusCode, time.Since(startTime))

	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response.Body = io.NopCloser(bytes.NewReader(payload))

	result := &Response{
		Method:     method.String(),
		URL:        response.Request.URL,
		StatusCode: response.StatusCode,
		Reason:     reasonPhrase(response),
		Header:     response.Header,
		Body:       payload,
		Raw:        response,
	}

	if isErrorStatus(response.StatusCode) {
		httpErr := &HTTPError{
			Method:     result.Method,
			URL:        result.URL.String(),
			StatusCode: result.StatusCode,
			Reason:     result.Reason,
			Body:       result.Text(),
			Response:   result,
		}

		log.With("method", httpErr.Method, "url", httpErr.URL).
			Errorf("%d %s: %s", httpErr.StatusCode, httpErr.Reason, httpErr.Body)

		return nil, httpErr
	}

	return result, nil
}

func (c *ClientImpl) log(ctx context.Context) *zap.SugaredLogger {
	if c.logger != nil {
		return c.logger
	}

	return logger.FromContext(ctx)
}

func toHeader(headers map[string]string) http.Header {
	result := make(http.Header, len(headers))
	for name, value := range headers {
		result.Set(name, value)
	}

	return result
}
