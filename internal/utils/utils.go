package utils

import (
	"errors"
	"fmt"
	"math"
	"mime"
	"regexp"
	"strings"
)

// ErrInvalidKeyValue indicates that a "key=value" pair could not be split.
var ErrInvalidKeyValue = errors.New("expected key=value")

// textContentTypePatterns matches content types that are safe to print as text.
//
//nolint:gochecknoglobals // These are immutable, pre-compiled regex patterns and used as constants.
var textContentTypePatterns = []*regexp.Regexp{
	regexp.MustCompile("^text/.+"),
	regexp.MustCompile("^application/json$"),
	regexp.MustCompile(`^application/.+\+json$`),
	regexp.MustCompile(`^application/(.+\+)?xml$`),
	regexp.MustCompile("^application/x-www-form-urlencoded$"),
}

// SafeUint64ToInt64 converts a uint64 value to an int64 safely,
// ensuring that the value does not exceed the maximum limit of int64.
func SafeUint64ToInt64(val uint64) int64 {
	if val > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(val)
}

// IsTextContentType checks if the given content type represents a text-based format.
// The charset, if present, must be "utf-8" or "us-ascii".
func IsTextContentType(contentType string) bool {
	parsedType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	for _, pattern := range textContentTypePatterns {
		if !pattern.MatchString(parsedType) {
			continue
		}

		charset := strings.ToLower(params["charset"])

		return charset == "" || charset == "utf-8" || charset == "us-ascii"
	}

	return false
}

// ParseKeyValue splits "key=value" at the first '='.
// The key is trimmed and must not be empty; the value is kept as is.
func ParseKeyValue(pair string) (string, string, error) {
	key, value, found := strings.Cut(pair, "=")

	key = strings.TrimSpace(key)
	if !found || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidKeyValue, pair)
	}

	return key, value, nil
}

// ParseKeyValues splits every pair with ParseKeyValue and groups values by key,
// preserving the order in which values for the same key were given.
func ParseKeyValues(pairs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(pairs))

	for _, pair := range pairs {
		key, value, err := ParseKeyValue(pair)
		if err != nil {
			return nil, err
		}

		result[key] = append(result[key], value)
	}

	return result, nil
}
