package app

import (
	"fmt"

	"github.com/oshokin/basic-api-client/internal/client/api"
	"github.com/oshokin/basic-api-client/internal/config"
)

// NewClient builds an API client from a validated configuration.
// Extra options are applied after the configuration-derived ones.
func NewClient(cfg *config.Config, opts ...api.Option) (*api.ClientImpl, error) {
	options := append([]api.Option{
		api.WithTimeout(cfg.ParsedTimeout),
		api.WithTLSVerification(cfg.ParsedVerification),
		api.WithUserAgent(cfg.UserAgent),
		api.WithMaxLogLength(cfg.ParsedMaxLogLength),
	}, opts...)

	client, err := api.NewClient(cfg.BaseURL, cfg.Headers, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return client, nil
}
