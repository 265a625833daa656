package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/basic-api-client/internal/config"
	"github.com/oshokin/basic-api-client/internal/logger"
	"github.com/oshokin/basic-api-client/internal/utils"
	"github.com/oshokin/basic-api-client/internal/version"
)

var (
	//nolint:gochecknoglobals // It is required for configuration initialization before the application starts.
	configFilenameFromFlag string

	//nolint:gochecknoglobals,lll // It is initialized once during the application's startup and shared across the command execution logic.
	appConfig *config.Config

	//nolint:gochecknoglobals,lll // Cobra command requires a global definition for proper command-line parsing and execution.
	rootCmd = &cobra.Command{
		Use:   "basic-api-client",
		Short: "Send GET, POST, PUT and DELETE requests to a configured HTTP API.",
		Long: `basic-api-client sends one request per invocation to an HTTP API.

Paths are resolved against the configured base URL the way browsers resolve links:
- "resource/5" lands under the base URL's last directory
- "/resource/5" replaces the base URL's path
- a full URL replaces the base URL entirely

Default headers, timeout and TLS verification come from the configuration file
and can be overridden with flags. Responses with a 4xx or 5xx status are logged
and make the command exit with a non-zero code.`,
		Version:           version.Full(),
		PersistentPreRun:  initConfig,
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
)

// Execute executes the root command.
func Execute() {
	signals := []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM}
	ctx, stop := signal.NotifyContext(context.Background(), signals...)

	defer func() {
		_ = logger.Logger().Sync()
	}()

	defer stop()

	go func() {
		defer stop()

		err := rootCmd.ExecuteContext(ctx)
		cobra.CheckErr(err)
	}()

	<-ctx.Done()
}

//nolint:gochecknoinits // Cobra requires the init function to set up flags before the command is executed.
func init() {
	addGlobalFlags(rootCmd.PersistentFlags())
}

func addGlobalFlags(flags *pflag.FlagSet) {
	flags.StringVarP(
		&configFilenameFromFlag,
		"config",
		"c",
		"",
		fmt.Sprintf("path to the configuration file (default is '%s')",
			config.DefaultConfigFilename))

	flags.StringP(
		"base-url",
		"u",
		"",
		"base URL every path is resolved against.")

	flags.StringArrayP(
		"header",
		"H",
		nil,
		"default header as Name=Value; repeat for several headers, overrides the configuration file.")

	flags.StringP(
		"timeout",
		"t",
		"",
		"request timeout, for example: 30s, 2m.")

	flags.String(
		"ssl-verification",
		"",
		"false to skip certificate checks, true to use system roots, or a path to a PEM CA bundle.")

	flags.String(
		"log-level",
		"",
		"logging level: debug, info, warn, error.")

	flags.String(
		"metrics-textfile",
		"",
		"write request metrics to this file in the Prometheus text format.")
}

func initConfig(cmd *cobra.Command, _ []string) {
	var err error

	appConfig, err = config.LoadConfig(configFilenameFromFlag)
	if err != nil {
		logger.Fatalf(cmd.Context(), "Failed to load configuration: %v", err)
	}

	if level, ok := logger.ParseLogLevel(appConfig.LogLevel); ok {
		logger.SetLevel(level)
	}
}

// bindFlagsToConfig applies changed flags on top of the loaded configuration and validates the result.
func bindFlagsToConfig(flags *pflag.FlagSet, cfg *config.Config) error {
	if flag := flags.Lookup("base-url"); flag != nil && flag.Changed {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}

	if flag := flags.Lookup("header"); flag != nil && flag.Changed {
		pairs, _ := flags.GetStringArray("header")

		headers, err := utils.ParseKeyValues(pairs)
		if err != nil {
			return fmt.Errorf("invalid header flag: %w", err)
		}

		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(headers))
		}

		for name, values := range headers {
			cfg.Headers[name] = values[len(values)-1]
		}
	}

	if flag := flags.Lookup("timeout"); flag != nil && flag.Changed {
		cfg.Timeout, _ = flags.GetString("timeout")
	}

	if flag := flags.Lookup("ssl-verification"); flag != nil && flag.Changed {
		cfg.SSLVerification, _ = flags.GetString("ssl-verification")
	}

	if flag := flags.Lookup("log-level"); flag != nil && flag.Changed {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return config.ValidateConfig(cfg)
}
