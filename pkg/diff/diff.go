// Package diff describes what deindenting changed in a file as a unified diff.
//
// No general-purpose diff algorithm is needed: deindenting never reorders or
// inserts lines, so every input line is either kept, re-indented, or dropped
// (the blank lines before the first and after the last line with content).
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/deindent/pkg/deindent"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Kind classifies a diff line.
type Kind int

const (
	// Context is an unchanged line.
	Context Kind = iota

	// Remove is a line from the original.
	Remove

	// Add is a line in the deindented output.
	Add
)

// Prefix returns the unified diff prefix for k.
func (k Kind) Prefix() string {
	switch k {
	case Remove:
		return "-"
	case Add:
		return "+"
	default:
		return " "
	}
}

// Line is one line of a hunk.
type Line struct {
	Kind Kind

	// Text is the line without its terminator.
	Text string

	// NoNewline is set when the line is the last one and has no terminator.
	NoNewline bool
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
}

// Diff is the difference between a file and its deindented form.
type Diff struct {
	Path  string
	Hunks []Hunk

	// Reindented counts lines whose indentation was removed.
	Reindented int

	// Dropped counts blank lines removed before the first or after the last
	// line with content, and blank lines that render to nothing.
	Dropped int
}

type op int

const (
	opKeep op = iota
	opChange
	opDrop
)

type entry struct {
	op       op
	old, new string
	oldNo    int
	newNo    int
}

// Compute returns the diff for d, or nil when deindenting changes nothing.
func Compute(path string, d *deindent.Deindenter) *Diff {
	if d == nil || !d.Changed() {
		return nil
	}

	entries := buildEntries(d)
	result := &Diff{Path: path}
	for _, e := range entries {
		switch e.op {
		case opChange:
			result.Reindented++
		case opDrop:
			result.Dropped++
		case opKeep:
		}
	}

	result.Hunks = buildHunks(entries)
	return result
}

func buildEntries(d *deindent.Deindenter) []entry {
	rendered := make(map[int]string)
	for _, line := range d.Lines() {
		rendered[line.Index] = line.Rendered
	}

	var entries []entry
	newNo := 0
	input := d.Input()
	for index := 0; input != ""; index++ {
		var line string
		if i := strings.IndexByte(input, '\n'); i >= 0 {
			line, input = input[:i+1], input[i+1:]
		} else {
			line, input = input, ""
		}

		e := entry{old: line, oldNo: index + 1}
		out, inRange := rendered[index]
		switch {
		case !inRange, out == "":
			// A blank line exactly as long as the indent renders to nothing.
			e.op = opDrop
		case out == line:
			e.op = opKeep
		default:
			e.op = opChange
		}
		if e.op != opDrop {
			newNo++
			e.new = out
			e.newNo = newNo
		}
		entries = append(entries, e)
	}
	return entries
}

func buildHunks(entries []entry) []Hunk {
	var hunks []Hunk

	for i := 0; i < len(entries); {
		if entries[i].op == opKeep {
			i++
			continue
		}

		start := max(0, i-contextLines)
		last := i
		for j := i + 1; j < len(entries); j++ {
			if entries[j].op != opKeep {
				last = j
				continue
			}
			if j-last > 2*contextLines {
				break
			}
		}
		stop := min(len(entries), last+contextLines+1)

		hunks = append(hunks, makeHunk(entries, start, stop))
		i = stop
	}
	return hunks
}

func makeHunk(entries []entry, start, stop int) Hunk {
	h := Hunk{OldStart: entries[start].oldNo}

	// With no output lines the new start is the line before the hunk.
	for k := start - 1; k >= 0; k-- {
		if entries[k].newNo > 0 {
			h.NewStart = entries[k].newNo
			break
		}
	}

	var removed, added []Line
	flush := func() {
		h.Lines = append(h.Lines, removed...)
		h.Lines = append(h.Lines, added...)
		removed, added = nil, nil
	}

	for _, e := range entries[start:stop] {
		h.OldCount++
		if e.newNo > 0 {
			if h.NewCount == 0 {
				h.NewStart = e.newNo
			}
			h.NewCount++
		}

		switch e.op {
		case opKeep:
			flush()
			h.Lines = append(h.Lines, makeLine(Context, e.old))
		case opChange:
			removed = append(removed, makeLine(Remove, e.old))
			added = append(added, makeLine(Add, e.new))
		case opDrop:
			removed = append(removed, makeLine(Remove, e.old))
		}
	}
	flush()

	return h
}

func makeLine(kind Kind, text string) Line {
	trimmed, hadNewline := strings.CutSuffix(text, "\n")
	return Line{Kind: kind, Text: trimmed, NoNewline: !hadNewline}
}

// WriteUnified writes d as a unified diff with a/ and b/ path prefixes.
func (d *Diff) WriteUnified(w io.Writer) error {
	if d == nil {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, line := range h.Lines {
			b.WriteString(line.Kind.Prefix())
			b.WriteString(line.Text)
			b.WriteByte('\n')
			if line.NoNewline {
				b.WriteString("\\ No newline at end of file\n")
			}
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write diff: %w", err)
	}
	return nil
}
