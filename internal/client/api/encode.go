package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/google/go-querystring/query"
)

const formContentType = "application/x-www-form-urlencoded"

// encodeValues turns a params or form value into url.Values.
// Supported: nil, url.Values, map[string]string, map[string][]string,
// and structs (or pointers to structs) tagged with `url:"..."`.
func encodeValues(value any) (url.Values, bool, error) {
	switch v := value.(type) {
	case nil:
		return nil, true, nil
	case url.Values:
		return v, true, nil
	case map[string][]string:
		return url.Values(v), true, nil
	case map[string]string:
		values := make(url.Values, len(v))
		for key, item := range v {
			values.Set(key, item)
		}

		return values, true, nil
	}

	kind := reflect.Indirect(reflect.ValueOf(value)).Kind()
	if kind != reflect.Struct {
		return nil, false, nil
	}

	values, err := query.Values(value)
	if err != nil {
		return nil, true, err
	}

	return values, true, nil
}

// applyParams appends the encoded params to the URL's existing query string.
func applyParams(target *url.URL, params any) error {
	values, supported, err := encodeValues(params)
	if !supported {
		return fmt.Errorf("%w: %T", ErrUnsupportedParams, params)
	}

	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	encoded := values.Encode()
	if encoded == "" {
		return nil
	}

	if target.RawQuery == "" {
		target.RawQuery = encoded
	} else {
		target.RawQuery += "&" + encoded
	}

	return nil
}

// encodeBody returns the request body and, for form data, its content type.
// Supported: nil, []byte, string, io.Reader, and everything encodeValues accepts
// (sent form-encoded).
func encodeBody(data any) (io.Reader, string, error) {
	switch v := data.(type) {
	case nil:
		return http.NoBody, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "", nil
	case io.Reader:
		return v, "", nil
	}

	values, supported, err := encodeValues(data)
	if !supported {
		return nil, "", fmt.Errorf("%w: %T", ErrUnsupportedBody, data)
	}

	if err != nil {
		return nil, "", fmt.Errorf("failed to encode body: %w", err)
	}

	return strings.NewReader(values.Encode()), formContentType, nil
}
