package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/specialistvlad/drawcheck/internal/app"
	"github.com/specialistvlad/drawcheck/internal/cli"
)

// main is the entrypoint for the drawcheck application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Stdout, os.Stderr, os.Args[1:])
	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInvalid)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Reports go to outW and logs to logW.
func run(ctx context.Context, outW, logW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	drawcheckApp := app.NewApp(outW, logW, cfg)
	err = drawcheckApp.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, app.ErrInvalid):
		return &cli.ExitError{Code: cli.ExitInvalid}
	case errors.Is(err, app.ErrNoFiles):
		return &cli.ExitError{Code: cli.ExitInvalid, Message: err.Error()}
	default:
		return err
	}
}
