package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/oshokin/basic-api-client/internal/client/api"
	"github.com/oshokin/basic-api-client/internal/constants"
	"github.com/oshokin/basic-api-client/internal/logger"
)

// ErrDataAndForm indicates that both a raw body and form fields were given.
var ErrDataAndForm = errors.New("raw data and form fields are mutually exclusive")

// Request is a single command-line request.
type Request struct {
	// Verb is the HTTP verb as typed by the user.
	Verb string
	// Path is resolved against the configured base URL.
	Path string
	// Params become the query string.
	Params map[string][]string
	// Data is sent verbatim as the body.
	Data *string
	// Form fields are sent form-encoded as the body.
	Form map[string][]string
	// OutputPath, when set, receives the response body instead of stdout.
	OutputPath string
}

// body returns the value handed to the client as request data.
func (r *Request) body() (any, error) {
	switch {
	case r.Data != nil && len(r.Form) > 0:
		return nil, ErrDataAndForm
	case r.Data != nil:
		return *r.Data, nil
	case len(r.Form) > 0:
		return r.Form, nil
	default:
		return nil, nil //nolint:nilnil // No body is a valid outcome.
	}
}

// params returns the value handed to the client as query parameters.
func (r *Request) params() any {
	if len(r.Params) == 0 {
		return nil
	}

	return r.Params
}

// Runner sends requests through a client and writes the results.
type Runner struct {
	client   api.Client
	stdout   io.Writer
	progress io.Writer
}

// NewRunner creates a Runner. Response bodies go to stdout, the save progress bar to progress.
func NewRunner(client api.Client, stdout, progress io.Writer) *Runner {
	return &Runner{
		client:   client,
		stdout:   stdout,
		progress: progress,
	}
}

// Run sends req and prints or saves the response body.
func (r *Runner) Run(ctx context.Context, req Request) (*api.Response, error) {
	data, err := req.body()
	if err != nil {
		return nil, err
	}

	response, err := r.client.Do(ctx, req.Verb, req.Path, req.params(), data)
	if err != nil {
		return nil, err
	}

	logger.Infof(ctx, "%s %s: %s", response.Method, response.URL, response.Status())

	if req.OutputPath == "" {
		if _, err = r.stdout.Write(response.Body); err != nil {
			return nil, fmt.Errorf("failed to write response body: %w", err)
		}

		return response, nil
	}

	if err = r.save(req.OutputPath, response.Body); err != nil {
		return nil, err
	}

	logger.Infof(ctx, "Saved response body to %s", req.OutputPath)

	return response, nil
}

func (r *Runner) save(path string, body []byte) error {
	file, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	defer file.Close() //nolint:errcheck // Close error is superseded by the copy result below.

	bar := progressbar.NewOptions64(
		int64(len(body)),
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionSetDescription("saving"),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)

	if _, err = io.Copy(io.MultiWriter(file, bar), bytes.NewReader(body)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	return file.Sync()
}
