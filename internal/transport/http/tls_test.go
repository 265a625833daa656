package http

import (
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewTLSConfig tests TLS configuration for every verification mode.
func TestNewTLSConfig(t *testing.T) {
	t.Parallel()

	tlsConfig, err := NewTLSConfig(Verification{})
	require.NoError(t, err)
	assert.True(t, tlsConfig.InsecureSkipVerify, "zero value must disable verification")

	tlsConfig, err = NewTLSConfig(VerifySystem())
	require.NoError(t, err)
	assert.False(t, tlsConfig.InsecureSkipVerify)
	assert.Nil(t, tlsConfig.RootCAs)

	_, err = NewTLSConfig(VerifyWithCABundle(filepath.Join(t.TempDir(), "missing.pem")))
	require.ErrorContains(t, err, "failed to read CA bundle")

	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))

	_, err = NewTLSConfig(VerifyWithCABundle(garbage))
	require.ErrorIs(t, err, ErrEmptyCABundle)

	_, err = NewTLSConfig(Verification{Mode: VerifyMode(42)})
	require.ErrorIs(t, err, ErrUnknownVerifyMode)
}

// TestVerification_String tests the human-readable form of the setting.
func TestVerification_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "disabled", VerifyDisabled().String())
	assert.Equal(t, "system", VerifySystem().String())
	assert.Equal(t, "ca-bundle:/etc/ssl/ca.pem", VerifyWithCABundle("/etc/ssl/ca.pem").String())
	assert.Equal(t, "unknown", Verification{Mode: VerifyMode(42)}.String())
}

// TestNewBaseTransport_AgainstTLSServer tests the transport against a self-signed server.
func TestNewBaseTransport_AgainstTLSServer(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	bundle := filepath.Join(t.TempDir(), "ca.pem")
	certificate := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, os.WriteFile(bundle, certificate, 0o600))

	tests := []struct {
		name         string
		verification Verification
		expectError  bool
	}{
		{
			name:         "disabled accepts self-signed certificate",
			verification: VerifyDisabled(),
		},
		{
			name:         "system roots reject self-signed certificate",
			verification: VerifySystem(),
			expectError:  true,
		},
		{
			name:         "CA bundle accepts its own certificate",
			verification: VerifyWithCABundle(bundle),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			transport, err := NewBaseTransport(tt.verification)
			require.NoError(t, err)

			defer transport.CloseIdleConnections()

			req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
			require.NoError(t, err)

			resp, err := transport.RoundTrip(req)
			if tt.expectError {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
