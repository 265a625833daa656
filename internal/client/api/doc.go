// Package api provides a thin client for JSON/REST style HTTP APIs.
// A client is bound to one base URL and one set of default headers,
// and owns a session (connection pool and cookie jar) reused by every call.
// All four verb methods go through a single dispatch routine that resolves
// the path against the base URL, sends the request, logs and returns an
// *HTTPError for 4xx/5xx statuses, and otherwise hands back the response untouched.
package api
