package cmd

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oshokin/basic-api-client/internal/app"
	"github.com/oshokin/basic-api-client/internal/logger"
	"github.com/oshokin/basic-api-client/internal/utils"
)

//nolint:gochecknoglobals // Cobra command requires a global definition for proper command-line parsing and execution.
var requestCmd = &cobra.Command{
	Use:   "request {verb} {path}",
	Short: "Send a request with any supported verb (GET, POST, PUT, DELETE; case-insensitive).",
	Args:  cobra.ExactArgs(2), //nolint:mnd // Verb and path.
	Run: func(cmd *cobra.Command, args []string) {
		runRequest(cmd, args[0], args[1], true)
	},
}

//nolint:gochecknoinits // Cobra requires the init function to set up commands.
func init() {
	addRequestFlags(requestCmd.Flags(), true)
	rootCmd.AddCommand(requestCmd)

	rootCmd.AddCommand(
		newVerbCommand("get", http.MethodGet, "Fetch a resource.", false),
		newVerbCommand("post", http.MethodPost, "Create a resource.", true),
		newVerbCommand("update", http.MethodPut, "Replace a resource (HTTP PUT).", true),
		newVerbCommand("delete", http.MethodDelete, "Delete a resource. A body may be sent.", true),
	)
}

func newVerbCommand(use, verb, short string, withBody bool) *cobra.Command {
	command := &cobra.Command{
		Use:   use + " {path}",
		Short: short,
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runRequest(cmd, verb, args[0], withBody)
		},
	}

	addRequestFlags(command.Flags(), withBody)

	return command
}

func addRequestFlags(flags *pflag.FlagSet, withBody bool) {
	flags.StringArrayP(
		"param",
		"p",
		nil,
		"query parameter as name=value; repeat a name to send a list.")

	flags.StringP(
		"output",
		"o",
		"",
		"save the response body to this file instead of printing it.")

	if !withBody {
		return
	}

	flags.StringP(
		"data",
		"d",
		"",
		"raw request body.")

	flags.StringArrayP(
		"form",
		"F",
		nil,
		"form field as name=value, sent form-encoded; repeat for several fields.")
}

func runRequest(cmd *cobra.Command, verb, path string, withBody bool) {
	ctx := cmd.Context()

	if err := bindFlagsToConfig(cmd.Flags(), appConfig); err != nil {
		logger.Fatalf(ctx, "Failed to parse flags: %v", err)
	}

	logger.SetLevel(appConfig.ParsedLogLevel)

	req, err := buildRequest(cmd.Flags(), verb, path, withBody)
	if err != nil {
		logger.Fatalf(ctx, "Failed to parse flags: %v", err)
	}

	metricsTextfile, _ := cmd.Flags().GetString("metrics-textfile")

	app.ExecuteRequestCommand(ctx, appConfig, req, metricsTextfile)
}

func buildRequest(flags *pflag.FlagSet, verb, path string, withBody bool) (app.Request, error) {
	req := app.Request{
		Verb: verb,
		Path: path,
	}

	pairs, _ := flags.GetStringArray("param")

	params, err := utils.ParseKeyValues(pairs)
	if err != nil {
		return req, fmt.Errorf("invalid param flag: %w", err)
	}

	req.Params = params
	req.OutputPath, _ = flags.GetString("output")
	req.OutputPath = strings.TrimSpace(req.OutputPath)

	if !withBody {
		return req, nil
	}

	if flag := flags.Lookup("data"); flag != nil && flag.Changed {
		data, _ := flags.GetString("data")
		req.Data = &data
	}

	pairs, _ = flags.GetStringArray("form")

	form, err := utils.ParseKeyValues(pairs)
	if err != nil {
		return req, fmt.Errorf("invalid form flag: %w", err)
	}

	req.Form = form

	return req, nil
}
