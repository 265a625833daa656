package api

import (
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listFilter struct {
	Page  int      `url:"page"`
	Tags  []string `url:"tag"`
	Query string   `url:"q,omitempty"`
}

// TestApplyParams tests query string encoding for every supported params type.
func TestApplyParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rawURL   string
		params   any
		expected string
	}{
		{
			name:     "nil params",
			rawURL:   "https://api.example.org/v1/items",
			params:   nil,
			expected: "https://api.example.org/v1/items",
		},
		{
			name:     "string map",
			rawURL:   "https://api.example.org/v1/items",
			params:   map[string]string{"b": "2", "a": "1"},
			expected: "https://api.example.org/v1/items?a=1&b=2",
		},
		{
			name:     "list map",
			rawURL:   "https://api.example.org/v1/items",
			params:   map[string][]string{"tag": {"x", "y"}},
			expected: "https://api.example.org/v1/items?tag=x&tag=y",
		},
		{
			name:     "url values with escaping",
			rawURL:   "https://api.example.org/v1/items",
			params:   url.Values{"q": {"a b&c"}},
			expected: "https://api.example.org/v1/items?q=a+b%26c",
		},
		{
			name:     "tagged struct",
			rawURL:   "https://api.example.org/v1/items",
			params:   listFilter{Page: 2, Tags: []string{"x", "y"}},
			expected: "https://api.example.org/v1/items?page=2&tag=x&tag=y",
		},
		{
			name:     "pointer to tagged struct",
			rawURL:   "https://api.example.org/v1/items",
			params:   &listFilter{Page: 1, Query: "go"},
			expected: "https://api.example.org/v1/items?page=1&q=go",
		},
		{
			name:     "appends to existing query",
			rawURL:   "https://api.example.org/v1/items?sort=desc",
			params:   map[string]string{"page": "3"},
			expected: "https://api.example.org/v1/items?sort=desc&page=3",
		},
		{
			name:     "empty map keeps existing query",
			rawURL:   "https://api.example.org/v1/items?sort=desc",
			params:   map[string]string{},
			expected: "https://api.example.org/v1/items?sort=desc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			target, err := url.Parse(tt.rawURL)
			require.NoError(t, err)

			require.NoError(t, applyParams(target, tt.params))
			assert.Equal(t, tt.expected, target.String())
		})
	}
}

// TestApplyParams_Unsupported tests rejection of unsupported params types.
func TestApplyParams_Unsupported(t *testing.T) {
	t.Parallel()

	target, err := url.Parse("https://api.example.org/")
	require.NoError(t, err)

	for _, params := range []any{42, "page=1", []string{"a"}, map[string]int{"a": 1}} {
		require.ErrorIs(t, applyParams(target, params), ErrUnsupportedParams, "%T", params)
	}
}

// TestEncodeBody tests request body encoding.
func TestEncodeBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                string
		data                any
		expectedBody        string
		expectedContentType string
	}{
		{
			name:         "nil body",
			data:         nil,
			expectedBody: "",
		},
		{
			name:         "bytes",
			data:         []byte(`{"id":5}`),
			expectedBody: `{"id":5}`,
		},
		{
			name:         "string",
			data:         "plain text",
			expectedBody: "plain text",
		},
		{
			name:         "reader",
			data:         strings.NewReader("streamed"),
			expectedBody: "streamed",
		},
		{
			name:                "form map",
			data:                map[string]string{"name": "John Doe", "age": "42"},
			expectedBody:        "age=42&name=John+Doe",
			expectedContentType: formContentType,
		},
		{
			name:                "form struct",
			data:                listFilter{Page: 1, Tags: []string{"a"}},
			expectedBody:        "page=1&tag=a",
			expectedContentType: formContentType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, contentType, err := encodeBody(tt.data)
			require.NoError(t, err)

			payload, err := io.ReadAll(body)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedBody, string(payload))
			assert.Equal(t, tt.expectedContentType, contentType)
		})
	}
}

// TestEncodeBody_Unsupported tests rejection of unsupported body types.
func TestEncodeBody_Unsupported(t *testing.T) {
	t.Parallel()

	for _, data := range []any{42, 3.14, []int{1}, map[string]int{"a": 1}} {
		_, _, err := encodeBody(data)
		require.ErrorIs(t, err, ErrUnsupportedBody, "%T", data)
	}
}
