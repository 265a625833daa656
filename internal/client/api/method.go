package api

import (
	"fmt"
	"net/http"
	"strings"
)

// Method is one of the HTTP verbs the client is allowed to send.
type Method uint8

// Supported methods.
const (
	MethodGet Method = iota + 1
	MethodPost
	MethodPut
	MethodDelete
)

//nolint:gochecknoglobals // Immutable lookup table.
var methodNames = map[Method]string{
	MethodGet:    http.MethodGet,
	MethodPost:   http.MethodPost,
	MethodPut:    http.MethodPut,
	MethodDelete: http.MethodDelete,
}

// ParseMethod matches verb case-insensitively against the supported methods.
// Surrounding whitespace is not trimmed: "get " is rejected.
func ParseMethod(verb string) (Method, error) {
	for method, name := range methodNames {
		if strings.EqualFold(verb, name) {
			return method, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedMethod, verb)
}

// String returns the canonical upper-case verb.
func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Method(%d)", uint8(m))
}

// IsValid reports whether m is one of the supported methods.
func (m Method) IsValid() bool {
	_, ok := methodNames[m]

	return ok
}
