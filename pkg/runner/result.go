package runner

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/diff"
)

// FileOutcome is what happened to a single file.
type FileOutcome struct {
	// Path is the file path, or "-" for standard input.
	Path string

	// Info describes the indentation found. Zero when Absent.
	Info deindent.IndentInfo

	// Absent is set when the file is empty or only whitespace.
	Absent bool

	// Original is the content that was read.
	Original []byte

	// Rendered is the deindented content. Empty when Absent.
	Rendered []byte

	// Changed reports whether Rendered differs from Original.
	Changed bool

	// Diff is set in ModeDiff for changed files.
	Diff *diff.Diff

	// Written is set when the file was rewritten in place.
	Written bool

	// BackedUp is set when a backup was taken before writing.
	BackedUp bool

	// Skipped is set when the file was left alone; SkipReason says why.
	Skipped    bool
	SkipReason string

	// Error is set if the file could not be processed.
	Error error
}

// BytesRemoved is the number of bytes deindenting removed from the file.
func (o *FileOutcome) BytesRemoved() int64 {
	if o.Absent {
		return 0
	}
	return int64(len(o.Original) - len(o.Rendered))
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesBackedUp   int
	FilesAbsent     int
	FilesSkipped    int
	FilesErrored    int

	// BytesRemoved totals FileOutcome.BytesRemoved over changed files.
	BytesRemoved int64
}

// Result is the outcome of a run.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	Stats Stats
}

// HasChanges reports whether any file would change or was changed.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// Err combines the errors of all failed files, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}

	var errs *multierror.Error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", outcome.Path, outcome.Error))
		}
	}
	return errs.ErrorOrNil()
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++

	switch {
	case outcome.Absent:
		r.Stats.FilesAbsent++
	case outcome.Skipped:
		r.Stats.FilesSkipped++
	}

	if outcome.Changed {
		r.Stats.FilesChanged++
		r.Stats.BytesRemoved += outcome.BytesRemoved()
	}
	if outcome.Written {
		r.Stats.FilesWritten++
	}
	if outcome.BackedUp {
		r.Stats.FilesBackedUp++
	}
}
