package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/drawcheck/internal/app"
	"github.com/specialistvlad/drawcheck/internal/config"
	"github.com/specialistvlad/drawcheck/internal/render"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("drawcheck", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
drawcheck - Validate draw.io diagrams before they reach a renderer.

Usage:
  drawcheck [options] PATH [PATH...]

Arguments:
  PATH
    A .drawio, .drawio.svg or .drawio.png file, or a directory searched
    recursively for them.

Exit status is 0 when every file is valid, 1 when any file is invalid or
no file was found, and 2 for usage errors.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file. Defaults to "+config.DefaultFile+" if present.")
	formatFlag := flagSet.String("format", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	workersFlag := flagSet.Int("workers", 4, "Number of files validated concurrently.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	noColorFlag := flagSet.Bool("no-color", false, "Disable styled text output.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No paths provided, printing usage.")
		flagSet.Usage()
		return nil, false, usageError("no input paths given")
	}

	format, err := render.ParseFormat(*formatFlag)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	cfg := app.Config{
		Paths:      flagSet.Args(),
		Extensions: app.DefaultExtensions,
		Format:     string(format),
		NoColor:    *noColorFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		Workers:    *workersFlag,
	}

	path, optional := *configFlag, false
	if path == "" {
		path, optional = config.DefaultFile, true
	}
	file, err := config.Load(context.Background(), path, optional)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	if file != nil {
		slog.Debug("Applying configuration file.", "path", path)
		applyFile(&cfg, file, explicit)
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", validated)
	return validated, false, nil
}

// applyFile copies settings from the configuration file that were not set
// on the command line.
func applyFile(cfg *app.Config, file *config.File, explicit map[string]bool) {
	if file.Workers != nil && !explicit["workers"] {
		cfg.Workers = *file.Workers
	}
	if len(file.Extensions) > 0 {
		cfg.Extensions = file.Extensions
	}
	cfg.Disabled = file.DisabledCodes()
	cfg.Enabled = file.EnabledCodes()
}
