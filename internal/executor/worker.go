package executor

import (
	"context"

	"github.com/specialistvlad/drawcheck/internal/ctxlog"
)

// worker is the processing loop for a single concurrent worker. Each index
// is written by exactly one worker, so results needs no lock.
func (e *Executor) worker(ctx context.Context, readyChan <-chan int, results []Result, paths []string, workerID int) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for i := range readyChan {
		path := paths[i]
		workerLogger := logger.With("workerID", workerID, "file", path)
		workerLogger.Debug("Worker picked up file.")

		rep := e.validateFile(path)
		results[i] = Result{Path: path, Report: rep}

		workerLogger.Debug("File validated.", "passed", rep.Passed(), "issues", len(rep.Issues))
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}
