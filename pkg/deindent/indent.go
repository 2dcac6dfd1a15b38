// Package deindent removes the common leading indentation from a block of text.
//
// The work happens in two passes over the same input. Analyze scans the text
// once to find the first and last lines with visible content and the smallest
// whitespace prefix among them. A Deindenter then re-walks that line range and
// writes every line with the shared prefix removed.
package deindent

import "strings"

// IndentInfo describes the indentation of a scanned string.
// It is a plain value; copies are independent.
type IndentInfo struct {
	// FirstLine is the zero-based index of the first non-blank line.
	FirstLine int `json:"first_line" yaml:"first_line"`

	// LastLine is the zero-based index of the last non-blank line.
	LastLine int `json:"last_line" yaml:"last_line"`

	// LeadingWhitespace is the number of bytes that can be stripped from
	// every non-blank line.
	LeadingWhitespace int `json:"leading_whitespace" yaml:"leading_whitespace"`
}

// Analyze scans input and returns its indentation info.
// The boolean is false when input is empty or contains only whitespace;
// the returned IndentInfo is meaningless in that case.
func Analyze(input string) (IndentInfo, bool) {
	var (
		info  IndentInfo
		found bool
	)

	index := 0
	for rest := input; rest != ""; index++ {
		var line string
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, ""
		}

		ws := leadingWhitespace(line)
		if ws == len(line) {
			continue
		}

		if !found {
			info.FirstLine = index
			info.LeadingWhitespace = ws
			found = true
		}
		info.LastLine = index
		info.LeadingWhitespace = min(info.LeadingWhitespace, ws)
	}

	if !found {
		return IndentInfo{}, false
	}
	return info, true
}

// LineCount returns the number of lines in the range [FirstLine, LastLine].
func (i IndentInfo) LineCount() int {
	return i.LastLine - i.FirstLine + 1
}

// leadingWhitespace counts the ASCII whitespace bytes at the start of line.
func leadingWhitespace(line string) int {
	n := 0
	for n < len(line) && isASCIISpace(line[n]) {
		n++
	}
	return n
}

// isASCIISpace reports whether b is one of space, \t, \n, \v, \f or \r.
func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
