package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/basic-api-client/internal/logger"
	http_transport "github.com/oshokin/basic-api-client/internal/transport/http"
)

// Config holds all configuration settings.
type Config struct {
	// BaseURL is the URL every request path is resolved against.
	BaseURL string `mapstructure:"base_url"`
	// Headers are sent with every request.
	Headers map[string]string `mapstructure:"headers"`
	// Timeout is the per-request timeout (e.g., "60s", "2m").
	Timeout string `mapstructure:"timeout"`
	// SSLVerification is "false" to disable certificate checks, "true" to use the system roots,
	// or a path to a PEM CA bundle.
	SSLVerification string `mapstructure:"ssl_verification"`
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// MaxLogLength caps debug request/response dumps (e.g., "1 MB", "64KiB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// UserAgent is sent when Headers carry no User-Agent.
	UserAgent string `mapstructure:"user_agent"`
	// ParsedTimeout is the parsed request timeout.
	ParsedTimeout time.Duration
	// ParsedVerification is the parsed TLS verification setting.
	ParsedVerification http_transport.Verification
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedMaxLogLength is the parsed dump size cap in bytes.
	ParsedMaxLogLength uint64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".basic-api-client.yaml"

	// EnvPrefix prefixes environment variables that override file settings.
	EnvPrefix = "BASIC_API_CLIENT"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = "60s"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "info"

	// DefaultMaxLogLength is the default cap for debug dumps.
	DefaultMaxLogLength = "1 MiB"
)

// Static error definitions for better error handling.
var (
	// ErrEmptyBaseURL indicates that no base URL was configured.
	ErrEmptyBaseURL = errors.New("base URL cannot be empty")
	// ErrInvalidBaseURL indicates that the base URL is not absolute.
	ErrInvalidBaseURL = errors.New("base URL must be an absolute URL")
	// ErrInvalidTimeout indicates a non-positive timeout.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrEmptyHeaderName indicates a header entry without a name.
	ErrEmptyHeaderName = errors.New("header name cannot be empty")
)

//nolint:gochecknoglobals // Immutable lookup table.
var (
	verificationDisabledValues = map[string]struct{}{
		"": {}, "0": {}, "false": {}, "no": {}, "off": {}, "none": {}, "disabled": {},
	}
	verificationSystemValues = map[string]struct{}{
		"1": {}, "true": {}, "yes": {}, "on": {}, "system": {},
	}
)

// LoadConfig loads configuration settings from a YAML file and the environment.
// A missing default file is not an error; a missing explicitly named file is.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Environment overrides only apply to keys viper knows about.
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("ssl_verification", "false")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("max_log_length", DefaultMaxLogLength)
	v.SetDefault("user_agent", "")

	return v
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return ErrEmptyBaseURL
	}

	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if !baseURL.IsAbs() || baseURL.Host == "" {
		return fmt.Errorf("%w: '%s'", ErrInvalidBaseURL, cfg.BaseURL)
	}

	for name := range cfg.Headers {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyHeaderName
		}
	}

	timeout := strings.TrimSpace(cfg.Timeout)
	if timeout == "" {
		timeout = DefaultTimeout
	}

	cfg.ParsedTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	cfg.ParsedVerification = ParseVerification(cfg.SSLVerification)

	logLevel := cfg.LogLevel
	if strings.TrimSpace(logLevel) == "" {
		logLevel = DefaultLogLevel
	}

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(logLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	maxLogLength := strings.TrimSpace(cfg.MaxLogLength)
	if maxLogLength == "" {
		maxLogLength = DefaultMaxLogLength
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	return nil
}

// ParseVerification interprets an ssl_verification value.
// Boolean-like values select disabled or system verification; anything else is a CA bundle path.
func ParseVerification(value string) http_transport.Verification {
	trimmed := strings.TrimSpace(value)
	normalized := strings.ToLower(trimmed)

	if _, ok := verificationDisabledValues[normalized]; ok {
		return http_transport.VerifyDisabled()
	}

	if _, ok := verificationSystemValues[normalized]; ok {
		return http_transport.VerifySystem()
	}

	return http_transport.VerifyWithCABundle(trimmed)
}
