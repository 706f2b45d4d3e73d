package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/drawcheck/internal/executor"
	"github.com/specialistvlad/drawcheck/internal/fsutil"
	"github.com/specialistvlad/drawcheck/internal/render"
)

// Run discovers the configured files, validates them and prints the
// results. It returns ErrInvalid when any file failed and ErrNoFiles when
// there was nothing to validate.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.Expand(ctx, a.config.Paths, a.config.Extensions)
	if err != nil {
		return fmt.Errorf("failed to discover files: %w", err)
	}
	if len(files) == 0 {
		a.logger.Warn("No files found to validate.", "paths", a.config.Paths)
		return ErrNoFiles
	}
	a.logger.Info("Files discovered.", "count", len(files))

	exec := executor.New(a.validator, a.config.Workers)
	results, err := exec.Run(ctx, files)
	if err != nil {
		return err
	}

	opts := render.Options{
		Format: render.Format(a.config.Format),
		Color:  render.ColorEnabled(a.outW, a.config.NoColor),
	}
	if err := render.Write(a.outW, results, opts); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	summary := render.Summarize(results)
	a.logger.Info("Validation finished.", "files", summary.Files, "passed", summary.Passed)
	if summary.Passed < summary.Files {
		return ErrInvalid
	}
	return nil
}
