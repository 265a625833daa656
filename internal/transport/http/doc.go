// Package http builds the transport side of the API client session:
// a RoundTripper chain that applies the session's fixed headers and User-Agent,
// dumps request/response pairs at debug level, and a TLS configuration
// derived from the verification setting.
package http
