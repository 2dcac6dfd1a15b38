package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/deindent/pkg/diff"
)

// FormatDiff renders d as a colored unified diff. A nil diff renders as "".
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if d == nil {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(s.DiffHeader.Render("--- a/"+d.Path) + "\n")
	builder.WriteString(s.DiffHeader.Render("+++ b/"+d.Path) + "\n")

	for _, hunk := range d.Hunks {
		builder.WriteString(s.DiffHunk.Render(hunk.Header()) + "\n")

		for _, line := range hunk.Lines {
			text := line.Kind.Prefix() + line.Text
			switch line.Kind {
			case diff.Add:
				builder.WriteString(s.DiffAdd.Render(text))
			case diff.Remove:
				builder.WriteString(s.DiffRemove.Render(text))
			default:
				builder.WriteString(s.DiffContext.Render(text))
			}
			builder.WriteString("\n")

			if line.NoNewline {
				builder.WriteString(s.DiffNote.Render(`\ No newline at end of file`) + "\n")
			}
		}
	}

	return builder.String()
}

// FormatDiffStat renders a one-line description of d.
// Example: "docs/a.md: 4 lines reindented, 2 blank lines dropped".
func (s *Styles) FormatDiffStat(d *diff.Diff) string {
	if d == nil {
		return ""
	}

	var parts []string
	if d.Reindented > 0 {
		parts = append(parts, fmt.Sprintf("%d %s reindented", d.Reindented, plural(d.Reindented, "line", "lines")))
	}
	if d.Dropped > 0 {
		parts = append(parts, fmt.Sprintf("%d blank %s dropped", d.Dropped, plural(d.Dropped, "line", "lines")))
	}

	return s.FilePath.Render(d.Path) + ": " + s.Dim.Render(strings.Join(parts, ", ")) + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
