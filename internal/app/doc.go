// Package app wires configuration, the API client and command-line requests together.
// It builds a client from the loaded configuration, sends one request per command,
// and prints or saves the response.
package app
