package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/deindent/internal/logging"
	"github.com/yaklabco/deindent/pkg/fsutil"
)

// Runner deindents files. Its fields decide what happens to each file;
// Options passed to Run decide which files are visited.
type Runner struct {
	// Mode selects print, write, check or diff behavior.
	Mode Mode

	// Backup configures backups taken in ModeWrite.
	Backup fsutil.BackupConfig
}

// New creates a Runner for mode with backups disabled.
func New(mode Mode) *Runner {
	return &Runner{
		Mode:   mode,
		Backup: fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar},
	}
}

// Run discovers files under opts.Paths and deindents them concurrently.
// Outcomes are returned in the order Discover produced the paths,
// regardless of which worker finished first. Per-file failures are
// recorded in the outcomes; the returned error covers discovery failures
// and cancellation only.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("starting run",
		logging.FieldFiles, len(files),
		logging.FieldJobs, jobs,
		"mode", r.Mode.String(),
	)

	workCh := make(chan int)
	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range workCh {
				if ctx.Err() != nil {
					continue
				}
				// Each index is handed to exactly one worker.
				outcomes[index] = r.ProcessFile(ctx, files[index])
				done[index] = true
			}
		}()
	}

feed:
	for index := range files {
		select {
		case <-ctx.Done():
			break feed
		case workCh <- index:
		}
	}
	close(workCh)
	wg.Wait()

	for index, outcome := range outcomes {
		if done[index] {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}
