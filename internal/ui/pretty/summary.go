package pretty

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/deindent/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "3 files deindented (1.2 kB removed), 2 unchanged".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, mode runner.Mode) string {
	var parts []string

	unchanged := stats.FilesProcessed - stats.FilesChanged - stats.FilesAbsent
	if stats.FilesChanged > 0 {
		parts = append(parts, s.changedPart(stats, mode))
	} else {
		parts = append(parts, s.Success.Render("Nothing to deindent"))
	}

	if unchanged > 0 && stats.FilesChanged > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d unchanged", unchanged)))
	}
	if stats.FilesAbsent > 0 {
		parts = append(parts, s.Dim.Render(fmt.Sprintf("%d blank", stats.FilesAbsent)))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	line := strings.Join(parts, ", ")
	if stats.FilesChanged == 0 {
		line += s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))
	}
	return line + "\n"
}

func (s *Styles) changedPart(stats runner.Stats, mode runner.Mode) string {
	files := plural(stats.FilesChanged, wordFile, wordFiles)
	removed := humanize.Bytes(uint64(max(stats.BytesRemoved, 0)))

	switch mode {
	case runner.ModeWrite:
		msg := fmt.Sprintf("%d %s deindented (%s removed)", stats.FilesWritten, plural(stats.FilesWritten, wordFile, wordFiles), removed)
		if stats.FilesBackedUp > 0 {
			msg += fmt.Sprintf(", %d backed up", stats.FilesBackedUp)
		}
		return s.Success.Render(msg)
	case runner.ModeCheck:
		return s.Failure.Render(fmt.Sprintf("%d %s would be deindented (%s)", stats.FilesChanged, files, removed))
	default:
		return s.Warning.Render(fmt.Sprintf("%d %s would change (%s)", stats.FilesChanged, files, removed))
	}
}

// FormatCheckFile formats the line printed for a file that --check found.
func (s *Styles) FormatCheckFile(outcome runner.FileOutcome) string {
	return s.Failure.Render("would deindent") + " " + s.FilePath.Render(outcome.Path) +
		s.Dim.Render(fmt.Sprintf(" (%d columns, lines %d-%d)",
			outcome.Info.LeadingWhitespace, outcome.Info.FirstLine+1, outcome.Info.LastLine+1)) + "\n"
}

// FormatFileError formats the line printed for a file that failed.
func (s *Styles) FormatFileError(outcome runner.FileOutcome) string {
	return s.Failure.Render("error") + " " + s.FilePath.Render(outcome.Path) + ": " + outcome.Error.Error() + "\n"
}

// FormatSkipped formats the line printed for a skipped file.
func (s *Styles) FormatSkipped(outcome runner.FileOutcome) string {
	return s.Warning.Render("skipped") + " " + s.FilePath.Render(outcome.Path) + s.Dim.Render(": "+outcome.SkipReason) + "\n"
}
