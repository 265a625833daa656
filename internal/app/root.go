package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/basic-api-client/internal/client/api"
	"github.com/oshokin/basic-api-client/internal/config"
	"github.com/oshokin/basic-api-client/internal/logger"
	"github.com/oshokin/basic-api-client/internal/metrics"
)

// ExecuteRequestCommand builds a client from cfg and sends req.
// When metricsTextfile is set, request metrics are written there in the Prometheus text format.
func ExecuteRequestCommand(ctx context.Context, cfg *config.Config, req Request, metricsTextfile string) {
	if err := sendRequest(ctx, cfg, req, metricsTextfile, os.Stdout, os.Stderr); err != nil {
		logger.Fatalf(ctx, "%v", err)
	}
}

// sendRequest returns instead of exiting so the client is closed on every path.
func sendRequest(
	ctx context.Context,
	cfg *config.Config,
	req Request,
	metricsTextfile string,
	stdout, progress io.Writer,
) error {
	registry := prometheus.NewRegistry()

	client, err := NewClient(cfg, api.WithMetrics(metrics.New(registry)))
	if err != nil {
		return fmt.Errorf("failed to initialize API client: %w", err)
	}

	defer client.Close()

	logger.Debugf(ctx, "Using base URL %s, timeout %s, TLS verification %s",
		client.BaseURL(), client.Timeout(), client.Verification())

	_, runErr := NewRunner(client, stdout, progress).Run(ctx, req)

	if metricsTextfile != "" {
		if err = prometheus.WriteToTextfile(metricsTextfile, registry); err != nil {
			logger.Errorf(ctx, "Failed to write metrics: %v", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("request failed: %w", runErr)
	}

	return nil
}

// ExecuteConfigInitCommand writes an example configuration file.
func ExecuteConfigInitCommand(ctx context.Context, path string, overwrite bool) {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	if err := config.WriteDefaultConfig(path, overwrite); err != nil {
		logger.Fatalf(ctx, "Failed to write configuration: %v", err)
	}

	logger.Infof(ctx, "Configuration written to %s", path)
}
