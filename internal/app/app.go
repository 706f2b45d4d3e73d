package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/specialistvlad/drawcheck/internal/ctxlog"
	"github.com/specialistvlad/drawcheck/internal/validate"
)

var (
	// ErrNoFiles is returned by Run when the paths matched no file.
	ErrNoFiles = errors.New("no diagram files found")
	// ErrInvalid is returned by Run when at least one file failed.
	ErrInvalid = errors.New("validation failed")
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	validator *validate.Validator
}

// NewApp is the constructor for the main application. Reports go to outW,
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	v := validate.New(
		validate.WithDisabled(cfg.Disabled...),
		validate.WithEnabled(cfg.Enabled...),
	)
	if len(cfg.Disabled) > 0 {
		logger.Debug("Hygiene checks disabled.", "codes", cfg.Disabled)
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		validator: v,
	}
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
