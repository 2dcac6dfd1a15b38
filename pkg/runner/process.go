package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/deindent/internal/logging"
	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/diff"
	"github.com/yaklabco/deindent/pkg/fsutil"
)

// StdinPath names standard input in outcomes.
const StdinPath = "-"

// binarySniffLen is how much of a file is searched for NUL bytes.
const binarySniffLen = 8000

var (
	// ErrNoContent is returned by Render for empty or whitespace-only input.
	ErrNoContent = errors.New("no content")

	// ErrWriteStdin is returned when ModeWrite is asked to process stdin.
	ErrWriteStdin = errors.New("cannot write standard input in place")
)

// Render deindents content. It returns ErrNoContent when there is nothing
// to deindent. Unlike Deindenter.String it accepts content that is not UTF-8.
func Render(content []byte) ([]byte, *deindent.Deindenter, error) {
	d, ok := deindent.New(string(content))
	if !ok {
		return nil, nil, ErrNoContent
	}

	var buf bytes.Buffer
	buf.Grow(len(content))
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), d, nil
}

// ProcessContent deindents in-memory content according to the runner's mode.
// Nothing is written; ModeWrite behaves like ModePrint here.
func (r *Runner) ProcessContent(ctx context.Context, path string, content []byte) FileOutcome {
	outcome := FileOutcome{Path: path, Original: content}

	if err := ctx.Err(); err != nil {
		outcome.Error = fmt.Errorf("processing cancelled: %w", err)
		return outcome
	}

	if isBinary(content) {
		outcome.Skipped = true
		outcome.SkipReason = "binary file"
		return outcome
	}

	rendered, d, err := Render(content)
	if errors.Is(err, ErrNoContent) {
		outcome.Absent = true
		return outcome
	}
	if err != nil {
		outcome.Error = err
		return outcome
	}

	outcome.Info = d.Info()
	outcome.Rendered = rendered
	outcome.Changed = d.Changed()

	if r.Mode == ModeDiff && outcome.Changed {
		outcome.Diff = diff.Compute(path, d)
	}

	logging.FromContext(ctx).Debug("deindented",
		logging.FieldPath, path,
		logging.FieldFirstLine, outcome.Info.FirstLine,
		logging.FieldLastLine, outcome.Info.LastLine,
		logging.FieldIndent, outcome.Info.LeadingWhitespace,
		logging.FieldChanged, outcome.Changed,
	)

	return outcome
}

// ProcessReader deindents everything read from in. ModeWrite is refused.
func (r *Runner) ProcessReader(ctx context.Context, in io.Reader) FileOutcome {
	if r.Mode == ModeWrite {
		return FileOutcome{Path: StdinPath, Error: ErrWriteStdin}
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return FileOutcome{Path: StdinPath, Error: fmt.Errorf("read stdin: %w", err)}
	}
	return r.ProcessContent(ctx, StdinPath, content)
}

// ProcessFile reads path, deindents it and, in ModeWrite, writes it back.
//
// Writing follows these steps:
//  1. Read and hash the original file.
//  2. Deindent in memory.
//  3. Skip the file if it changed on disk meanwhile.
//  4. Take a backup if enabled.
//  5. Replace the file atomically, keeping its permissions.
func (r *Runner) ProcessFile(ctx context.Context, path string) FileOutcome {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return FileOutcome{Path: path, Error: err}
	}

	outcome := r.ProcessContent(ctx, path, content)
	if r.Mode != ModeWrite || outcome.Error != nil || !outcome.Changed {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome
	}
	if modified {
		outcome.Skipped = true
		outcome.SkipReason = "file modified during processing"
		logging.FromContext(ctx).Warn("skipping file", logging.FieldPath, path, "reason", outcome.SkipReason)
		return outcome
	}

	backedUp, err := fsutil.CreateBackup(ctx, path, content, info.Mode, r.Backup)
	if err != nil {
		outcome.Error = fmt.Errorf("create backup: %w", err)
		return outcome
	}
	outcome.BackedUp = backedUp

	if err := fsutil.WriteAtomic(ctx, path, outcome.Rendered, info.Mode); err != nil {
		outcome.Error = fmt.Errorf("write: %w", err)
		return outcome
	}
	outcome.Written = true

	logging.FromContext(ctx).Debug("wrote file",
		logging.FieldPath, path,
		logging.FieldBackedUp, backedUp,
	)

	return outcome
}

func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
