package http

import (
	"errors"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/oshokin/basic-api-client/internal/logger"
	"github.com/oshokin/basic-api-client/internal/utils"
)

// LogTransport is a custom http.RoundTripper that logs HTTP requests and responses.
// It wraps another http.RoundTripper and logs debug information for each request/response cycle.
type LogTransport struct {
	// next is the underlying HTTP round tripper.
	next http.RoundTripper
	// maxLogLength is the maximum length of logged request/response data.
	maxLogLength uint64
}

// Static error definitions for better error handling.
var (
	// ErrNilRequest indicates that the HTTP request is nil.
	ErrNilRequest = errors.New("request is nil")
)

// NewLogTransport creates and returns a new instance of LogTransport.
// If maxLogLength is 0, it defaults to DefaultMaxLogLength.
func NewLogTransport(next http.RoundTripper, maxLogLength uint64) http.RoundTripper {
	if maxLogLength == 0 {
		maxLogLength = DefaultMaxLogLength
	}

	return &LogTransport{
		next:         next,
		maxLogLength: maxLogLength,
	}
}

// RoundTrip executes a single HTTP transaction and logs the request and response.
// It implements the http.RoundTripper interface.
func (t *LogTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil {
		return nil, ErrNilRequest
	}

	// Skip dumping if the logger is not at debug level.
	if !logger.IsDebugLevel() {
		return t.next.RoundTrip(req)
	}

	// Every dump pair shares one id so interleaved exchanges can be told apart.
	ctx := logger.WithKV(req.Context(), "exchange_id", uuid.NewString())

	requestDump := t.dumpRequest(req)

	startTime := time.Now()

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(startTime)

	if err != nil {
		logger.Debugf(ctx, "Request failed: %s %s | Error: %v", req.Method, req.URL.String(), err)

		return nil, err
	}

	responseDump := t.dumpResponse(resp)

	logger.Debugf(ctx, "%s %s [%d] %s, %s\nRequest: %s\nResponse: %s",
		req.Method, req.URL.Path, resp.StatusCode, duration, contentLengthString(resp.ContentLength),
		requestDump, responseDump)

	return resp, nil
}

func (t *LogTransport) dumpRequest(req *http.Request) string {
	// DumpRequestOut restores the body, so the request can still be sent.
	dump, err := httputil.DumpRequestOut(req, req.Body != nil && req.Body != http.NoBody)
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) dumpResponse(resp *http.Response) string {
	// Binary bodies are left out of the dump.
	contentType := resp.Header.Get("Content-Type")

	dump, err := httputil.DumpResponse(resp, utils.IsTextContentType(contentType))
	if err != nil {
		return err.Error()
	}

	return t.truncate(dump)
}

func (t *LogTransport) truncate(data []byte) string {
	if limit := utils.SafeUint64ToInt64(t.maxLogLength); int64(len(data)) > limit {
		return string(data[:limit]) + "... [truncated]"
	}

	return string(data)
}

func contentLengthString(contentLength int64) string {
	if contentLength < 0 {
		return "unknown size"
	}

	return humanize.Bytes(uint64(contentLength))
}
