package deindent

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"
)

// Deindenter pairs an IndentInfo with the string it was computed from,
// making it possible to write a deindented copy.
// The input is referenced, not copied.
type Deindenter struct {
	info  IndentInfo
	input string
}

// New scans input and returns a Deindenter for it.
// The boolean is false on empty or whitespace-only input.
func New(input string) (*Deindenter, bool) {
	info, ok := Analyze(input)
	if !ok {
		return nil, false
	}
	return &Deindenter{info: info, input: input}, true
}

// Deindent is a shorthand for New followed by String.
func Deindent(input string) (string, bool) {
	d, ok := New(input)
	if !ok {
		return "", false
	}
	return d.String(), true
}

// Info returns a copy of the underlying IndentInfo.
func (d *Deindenter) Info() IndentInfo {
	return d.info
}

// Input returns the scanned string.
func (d *Deindenter) Input() string {
	return d.input
}

// WriteTo writes the scanned input with the common indentation removed.
// Lines before FirstLine and after LastLine are not written. Line terminators,
// including a missing one on the final line, are reproduced as-is.
//
// The first failing write aborts rendering and its error is returned unchanged.
func (d *Deindenter) WriteTo(w io.Writer) (int64, error) {
	var written int64

	err := d.eachLine(func(_ int, line string) error {
		n, err := io.WriteString(w, d.strip(line))
		written += int64(n)
		return err
	})

	return written, err
}

// String returns the deindented text.
//
// String panics if the result is not valid UTF-8. Only ASCII whitespace is
// ever removed, so this can only happen when the input itself was not valid
// UTF-8.
func (d *Deindenter) String() string {
	var buf bytes.Buffer
	buf.Grow(len(d.input))

	// bytes.Buffer writes never fail.
	_, _ = d.WriteTo(&buf)

	if !utf8.Valid(buf.Bytes()) {
		panic("deindent: deindented string contains non-utf8 text")
	}
	return buf.String()
}

// Changed reports whether the deindented output differs from the input.
func (d *Deindenter) Changed() bool {
	if d.info.FirstLine > 0 || d.info.LeadingWhitespace > 0 {
		return true
	}
	_, end := d.Span()
	return end < len(d.input)
}

// Span returns the byte offsets [start, end) of the input covered by the
// lines FirstLine through LastLine, terminator of the last line included.
func (d *Deindenter) Span() (int, int) {
	start, end := 0, 0
	index := 0
	for offset := 0; offset < len(d.input); index++ {
		next := len(d.input)
		if i := strings.IndexByte(d.input[offset:], '\n'); i >= 0 {
			next = offset + i + 1
		}

		if index == d.info.FirstLine {
			start = offset
		}
		if index == d.info.LastLine {
			end = next
			break
		}
		offset = next
	}
	return start, end
}

// Line is a single rendered line.
type Line struct {
	// Index is the zero-based line number in the input.
	Index int

	// Original is the input line, terminator included.
	Original string

	// Rendered is Original with the common indentation removed.
	Rendered string
}

// Lines returns the lines in [FirstLine, LastLine] alongside their rendered form.
func (d *Deindenter) Lines() []Line {
	lines := make([]Line, 0, d.info.LineCount())
	_ = d.eachLine(func(index int, line string) error {
		lines = append(lines, Line{Index: index, Original: line, Rendered: d.strip(line)})
		return nil
	})
	return lines
}

// eachLine calls fn with every line in [FirstLine, LastLine], terminators
// kept, stopping at the first error.
func (d *Deindenter) eachLine(fn func(index int, line string) error) error {
	rest := d.input
	for index := 0; rest != "" && index <= d.info.LastLine; index++ {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i+1], rest[i+1:]
		} else {
			line, rest = rest, ""
		}

		if index < d.info.FirstLine {
			continue
		}
		if err := fn(index, line); err != nil {
			return err
		}
	}
	return nil
}

// strip removes the common indentation from line. A line shorter than the
// indentation is whitespace-only and is returned unchanged.
func (d *Deindenter) strip(line string) string {
	if len(line) < d.info.LeadingWhitespace {
		return line
	}
	return line[d.info.LeadingWhitespace:]
}
