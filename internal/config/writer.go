package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/basic-api-client/internal/constants"
)

// ErrConfigExists indicates that WriteDefaultConfig refused to overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// defaultConfigEntries lists keys in the order they are written, with their comments.
//
//nolint:gochecknoglobals // Immutable template.
var defaultConfigEntries = []struct {
	key     string
	value   string
	comment string
}{
	{
		key:     "base_url",
		value:   "https://api.example.org/v1/",
		comment: "URL every request path is resolved against.\nA trailing slash keeps relative paths under the last segment.",
	},
	{
		key:     "timeout",
		value:   DefaultTimeout,
		comment: "Per-request timeout.",
	},
	{
		key:     "ssl_verification",
		value:   "false",
		comment: "false disables certificate checks, true uses the system roots,\nany other value is a path to a PEM CA bundle.",
	},
	{
		key:     "log_level",
		value:   DefaultLogLevel,
		comment: "debug, info, warn, error. debug also dumps every request and response.",
	},
	{
		key:     "max_log_length",
		value:   DefaultMaxLogLength,
		comment: "Cap for each debug dump.",
	},
	{
		key:     "user_agent",
		value:   "",
		comment: "Sent when headers carry no User-Agent. Empty means basic-api-client/<version>.",
	},
}

// WriteDefaultConfig writes a commented example configuration to path.
// An existing file is only replaced when overwrite is true.
func WriteDefaultConfig(path string, overwrite bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}

	content, err := yaml.Marshal(defaultConfigDocument())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), content, constants.ConfigFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// defaultConfigDocument builds the YAML node tree so that comments and key order are preserved.
func defaultConfigDocument() *yaml.Node {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, entry := range defaultConfigEntries {
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: entry.key, HeadComment: entry.comment},
			&yaml.Node{Kind: yaml.ScalarNode, Value: entry.value, Style: yaml.DoubleQuotedStyle},
		)
	}

	headers := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "Accept"},
			{Kind: yaml.ScalarNode, Value: "application/json"},
		},
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "headers", HeadComment: "Sent with every request."},
		headers,
	)

	return &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{mapping},
	}
}
