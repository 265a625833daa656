package app

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/basic-api-client/internal/client/api"
	mock_api "github.com/oshokin/basic-api-client/internal/client/api/mocks"
	"github.com/oshokin/basic-api-client/internal/config"
)

func newResponse(t *testing.T, method, rawURL string, body string) *api.Response {
	t.Helper()

	parsedURL, err := url.Parse(rawURL)
	require.NoError(t, err)

	return &api.Response{
		Method:     method,
		URL:        parsedURL,
		StatusCode: http.StatusOK,
		Reason:     "OK",
		Header:     make(http.Header),
		Body:       []byte(body),
	}
}

func stringPtr(s string) *string {
	return &s
}

// TestRunner_Run_PrintsBody tests that the response body is written to stdout.
func TestRunner_Run_PrintsBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)

	params := map[string][]string{"page": {"2"}}

	client.EXPECT().
		Do(gomock.Any(), "get", "items", params, nil).
		Return(newResponse(t, "GET", "https://api.example.org/v1/items?page=2", `{"items":[]}`), nil).
		Times(1)

	var stdout bytes.Buffer

	response, err := NewRunner(client, &stdout, &bytes.Buffer{}).Run(context.Background(), Request{
		Verb:   "get",
		Path:   "items",
		Params: params,
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.JSONEq(t, `{"items":[]}`, stdout.String())
}

// TestRunner_Run_Bodies tests how raw data and form fields reach the client.
func TestRunner_Run_Bodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		request      Request
		expectedData any
	}{
		{
			name:         "raw data",
			request:      Request{Verb: "POST", Path: "items", Data: stringPtr(`{"a":1}`)},
			expectedData: `{"a":1}`,
		},
		{
			name:         "empty raw data is still a body",
			request:      Request{Verb: "PUT", Path: "items/1", Data: stringPtr("")},
			expectedData: "",
		},
		{
			name:         "form fields",
			request:      Request{Verb: "DELETE", Path: "items/1", Form: map[string][]string{"reason": {"dup"}}},
			expectedData: map[string][]string{"reason": {"dup"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			client := mock_api.NewMockClient(ctrl)

			client.EXPECT().
				Do(gomock.Any(), tt.request.Verb, tt.request.Path, nil, tt.expectedData).
				Return(newResponse(t, tt.request.Verb, "https://api.example.org/"+tt.request.Path, ""), nil)

			_, err := NewRunner(client, &bytes.Buffer{}, &bytes.Buffer{}).Run(context.Background(), tt.request)
			require.NoError(t, err)
		})
	}
}

// TestRunner_Run_DataAndForm tests that conflicting bodies are rejected before the client is called.
func TestRunner_Run_DataAndForm(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)

	_, err := NewRunner(client, &bytes.Buffer{}, &bytes.Buffer{}).Run(context.Background(), Request{
		Verb: "POST",
		Path: "items",
		Data: stringPtr("raw"),
		Form: map[string][]string{"a": {"1"}},
	})
	require.ErrorIs(t, err, ErrDataAndForm)
}

// TestRunner_Run_ClientError tests that client errors are returned unchanged.
func TestRunner_Run_ClientError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)

	httpErr := &api.HTTPError{Method: "GET", URL: "https://api.example.org/x", StatusCode: 404, Reason: "Not Found"}
	client.EXPECT().Do(gomock.Any(), "GET", "x", nil, nil).Return(nil, httpErr)

	var stdout bytes.Buffer

	_, err := NewRunner(client, &stdout, &bytes.Buffer{}).Run(context.Background(), Request{Verb: "GET", Path: "x"})
	require.ErrorIs(t, err, api.ErrHTTPStatus)
	assert.True(t, errors.Is(err, httpErr))
	assert.Empty(t, stdout.String())
}

// TestRunner_Run_SavesToFile tests writing the body to an output file.
func TestRunner_Run_SavesToFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	client := mock_api.NewMockClient(ctrl)

	body := bytes.Repeat([]byte("0123456789"), 1024)
	response := newResponse(t, "GET", "https://api.example.org/blob", string(body))

	client.EXPECT().Do(gomock.Any(), "GET", "blob", nil, nil).Return(response, nil)

	var stdout bytes.Buffer

	output := filepath.Join(t.TempDir(), "blob.bin")

	_, err := NewRunner(client, &stdout, &bytes.Buffer{}).Run(context.Background(), Request{
		Verb:       "GET",
		Path:       "blob",
		OutputPath: output,
	})
	require.NoError(t, err)

	saved, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, body, saved)
	assert.Empty(t, stdout.String())
}

// TestNewClient_FromConfig tests building a working client from configuration.
func TestNewClient_FromConfig(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/ping", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "cli-tests/1.0", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("pong"))
	}))
	defer server.Close()

	cfg := &config.Config{
		BaseURL:   server.URL + "/v1/",
		Headers:   map[string]string{"authorization": "Bearer token"},
		Timeout:   "2s",
		UserAgent: "cli-tests/1.0",
	}
	require.NoError(t, config.ValidateConfig(cfg))

	client, err := NewClient(cfg)
	require.NoError(t, err)

	defer client.Close()

	assert.Equal(t, 2*time.Second, client.Timeout())

	var stdout bytes.Buffer

	_, err = NewRunner(client, &stdout, &bytes.Buffer{}).Run(context.Background(), Request{Verb: "get", Path: "ping"})
	require.NoError(t, err)
	assert.Equal(t, "pong", stdout.String())
}

// TestNewClient_InvalidConfig tests that client construction errors are wrapped.
func TestNewClient_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewClient(&config.Config{BaseURL: "not-a-url"})
	require.ErrorIs(t, err, api.ErrInvalidBaseURL)
	assert.Contains(t, err.Error(), "failed to create API client")
}

// TestSendRequest_ReturnsHTTPError tests that a failed request is returned to the caller
// after metrics were written.
func TestSendRequest_ReturnsHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("missing"))
	}))
	defer server.Close()

	cfg := &config.Config{BaseURL: server.URL}
	require.NoError(t, config.ValidateConfig(cfg))

	metricsFile := filepath.Join(t.TempDir(), "metrics.prom")

	var stdout bytes.Buffer

	err := sendRequest(context.Background(), cfg, Request{Verb: "GET", Path: "/items/1"}, metricsFile, &stdout, &bytes.Buffer{})
	require.ErrorIs(t, err, api.ErrHTTPStatus)
	assert.True(t, api.IsHTTPStatus(err, http.StatusNotFound))
	assert.Contains(t, err.Error(), "request failed")

	content, readErr := os.ReadFile(metricsFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), `basic_api_client_requests_total{method="GET",status="404"} 1`)
}

// TestSendRequest_InvalidConfig tests that client construction errors are returned.
func TestSendRequest_InvalidConfig(t *testing.T) {
	t.Parallel()

	err := sendRequest(context.Background(), &config.Config{BaseURL: "relative/path"}, Request{Verb: "GET"}, "",
		&bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, api.ErrInvalidBaseURL)
	assert.Contains(t, err.Error(), "failed to initialize API client")
}
