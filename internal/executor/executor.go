// Package executor validates many files concurrently with a fixed pool of
// workers and returns the reports in input order.
package executor

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/specialistvlad/drawcheck/internal/ctxlog"
	"github.com/specialistvlad/drawcheck/internal/embedded"
	"github.com/specialistvlad/drawcheck/internal/report"
	"github.com/specialistvlad/drawcheck/internal/validate"
)

// Result pairs an input file with its report.
type Result struct {
	Path   string         `json:"file" yaml:"file"`
	Report *report.Report `json:"report" yaml:"report"`
}

// Passed reports whether the file's report holds no error.
func (r Result) Passed() bool {
	return r.Report.Passed()
}

// ReadFunc loads the raw bytes of one input.
type ReadFunc func(path string) ([]byte, error)

// Executor runs the validator over a list of files.
type Executor struct {
	validator   *validate.Validator
	workerCount int
	readFile    ReadFunc
}

// Option configures an Executor.
type Option func(*Executor)

// WithReadFunc replaces os.ReadFile, mainly for tests.
func WithReadFunc(fn ReadFunc) Option {
	return func(e *Executor) {
		e.readFile = fn
	}
}

// New creates an Executor. A workerCount below one is treated as one.
func New(v *validate.Validator, workerCount int, opts ...Option) *Executor {
	if workerCount < 1 {
		workerCount = 1
	}
	e := &Executor{
		validator:   v,
		workerCount: workerCount,
		readFile:    os.ReadFile,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run validates every path and returns one Result per path, in the order
// given. It returns early with the context error if ctx is cancelled;
// files already in flight are finished first.
func (e *Executor) Run(ctx context.Context, paths []string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executor starting run.", "files", len(paths), "workers", e.workerCount)

	results := make([]Result, len(paths))
	readyChan := make(chan int)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(readyChan)
		for i := range paths {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case readyChan <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	workers := min(e.workerCount, max(len(paths), 1))
	for workerID := range workers {
		g.Go(func() error {
			e.worker(gctx, readyChan, results, paths, workerID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validation run interrupted: %w", err)
	}
	logger.Debug("Executor finished run.")
	return results, nil
}

// validateFile never fails: read and extraction problems become a one-issue
// report so the file still appears in the summary.
func (e *Executor) validateFile(path string) *report.Report {
	data, err := e.readFile(path)
	if err != nil {
		return unreadable(fmt.Sprintf("cannot read file: %v", err))
	}
	text, err := embedded.Extract(path, data)
	if err != nil {
		return unreadable(fmt.Sprintf("cannot extract diagram: %v", err))
	}
	return e.validator.Validate(text)
}

func unreadable(msg string) *report.Report {
	var c report.Collector
	c.Errorf(report.CodeUnreadableInput, "", "", 0, "%s", msg)
	return report.Merge(&c)
}
