package deindent_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deindent/pkg/deindent"
)

const implBlock = `impl From<Deindenter<'_>> for IndentInfo {
    fn from(value: Deindenter) -> Self {
        value.indent_info
    }
}
`

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  deindent.IndentInfo
	}{
		{
			name:  "leading and trailing blank lines",
			input: "\n\nfoo\n  bar\n\n",
			want:  deindent.IndentInfo{FirstLine: 2, LastLine: 3, LeadingWhitespace: 0},
		},
		{
			name:  "uniform indentation",
			input: "    a\n    b\n",
			want:  deindent.IndentInfo{FirstLine: 0, LastLine: 1, LeadingWhitespace: 4},
		},
		{
			name:  "minimum wins",
			input: "      a\n  b\n    c",
			want:  deindent.IndentInfo{FirstLine: 0, LastLine: 2, LeadingWhitespace: 2},
		},
		{
			name:  "blank lines do not lower the minimum",
			input: "  \n      p1\n\n      p2",
			want:  deindent.IndentInfo{FirstLine: 1, LastLine: 3, LeadingWhitespace: 6},
		},
		{
			name:  "tabs and spaces count as bytes",
			input: "\t\tx\n \ty\n",
			want:  deindent.IndentInfo{FirstLine: 0, LastLine: 1, LeadingWhitespace: 2},
		},
		{
			name:  "crlf terminators",
			input: "\r\n  a\r\n  b\r\n\r\n",
			want:  deindent.IndentInfo{FirstLine: 1, LastLine: 2, LeadingWhitespace: 2},
		},
		{
			name:  "single line without terminator",
			input: "    x",
			want:  deindent.IndentInfo{FirstLine: 0, LastLine: 0, LeadingWhitespace: 4},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, ok := deindent.Analyze(testCase.input)
			require.True(t, ok)

			if diff := cmp.Diff(testCase.want, got); diff != "" {
				t.Errorf("Analyze() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAnalyze_NoContent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   \n", "\n\n\n", " \t\r\n\f\v", "   "} {
		_, ok := deindent.Analyze(input)
		assert.False(t, ok, "input %q should have no content", input)

		d, ok := deindent.New(input)
		assert.False(t, ok, "input %q should have no content", input)
		assert.Nil(t, d)

		out, ok := deindent.Deindent(input)
		assert.False(t, ok)
		assert.Empty(t, out)
	}
}

func TestDeindenter_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "drops surrounding blank lines",
			input: "\n\nfoo\n  bar\n\n",
			want:  "foo\n  bar\n",
		},
		{
			name:  "uniform indentation",
			input: "    a\n    b\n",
			want:  "a\nb\n",
		},
		{
			name:  "unindented first line is a no-op",
			input: "a\n    b\n",
			want:  "a\n    b\n",
		},
		{
			name:  "no trailing newline",
			input: "    x",
			want:  "x",
		},
		{
			name:  "blank line exactly as long as the indent vanishes",
			input: "  a\n \n  b\n",
			want:  "a\nb\n",
		},
		{
			name:  "paragraph separator shorter than indent",
			input: "  \n      p1\n\n      p2",
			want:  "p1\n\np2",
		},
		{
			name:  "paragraphs with trailing newline",
			input: "  \n        this is p1\n\n        this is p2\n",
			want:  "this is p1\n\nthis is p2\n",
		},
		{
			name:  "extra whitespace lines around a block",
			input: "\n\n" + implBlock + "\n",
			want:  implBlock,
		},
		{
			name:  "already deindented",
			input: implBlock,
			want:  implBlock,
		},
		{
			name:  "indented block",
			input: indent(implBlock, "                "),
			want:  implBlock,
		},
		{
			name:  "blank line at least as long as the indent is stripped",
			input: "  a\n   \n  b\n",
			want:  "a\n \nb\n",
		},
		{
			name:  "crlf terminators are kept",
			input: "  a\r\n  b\r\n",
			want:  "a\r\nb\r\n",
		},
		{
			name:  "multibyte content after indent",
			input: "    héllo\n      wörld\n",
			want:  "héllo\n  wörld\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			d, ok := deindent.New(testCase.input)
			require.True(t, ok)
			assert.Equal(t, testCase.want, d.String())

			out, ok := deindent.Deindent(testCase.input)
			require.True(t, ok)
			assert.Equal(t, testCase.want, out)
		})
	}
}

func TestDeindenter_AlmostIndented(t *testing.T) {
	t.Parallel()

	// Only the first line is unindented, so nothing is stripped.
	input := "impl From<Deindenter<'_>> for IndentInfo {\n" +
		"                    fn from(value: Deindenter) -> Self {\n" +
		"                        value.indent_info\n" +
		"                    }\n" +
		"                }\n"

	out, ok := deindent.Deindent(input)
	require.True(t, ok)
	assert.Equal(t, input, out)
}

func TestDeindenter_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"    a\n      b\n\n    c\n",
		"\n\n\t\tfunc main() {\n\t\t\treturn\n\t\t}",
		"  \n      p1\n\n      p2",
	}

	for _, input := range inputs {
		once, ok := deindent.Deindent(input)
		require.True(t, ok)

		twice, ok := deindent.Deindent(once)
		require.True(t, ok)
		assert.Equal(t, once, twice, "deindenting %q twice should be a no-op", input)
	}
}

func TestDeindenter_WriteTo(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("\n    a\n    b\n\n")
	require.True(t, ok)

	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

var errSinkClosed = errors.New("sink closed")

// failingWriter accepts limit writes and fails afterwards.
type failingWriter struct {
	limit  int
	writes []string
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if len(w.writes) >= w.limit {
		return 0, errSinkClosed
	}
	w.writes = append(w.writes, string(p))
	return len(p), nil
}

func TestDeindenter_WriteToPropagatesErrors(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("  a\n  b\n  c\n")
	require.True(t, ok)

	sink := &failingWriter{limit: 1}
	n, err := d.WriteTo(sink)

	require.ErrorIs(t, err, errSinkClosed)
	assert.Equal(t, []string{"a\n"}, sink.writes)
	assert.Equal(t, int64(2), n)
}

func TestDeindenter_Info(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("\n   x\n     y\n")
	require.True(t, ok)

	info := d.Info()
	assert.Equal(t, deindent.IndentInfo{FirstLine: 1, LastLine: 2, LeadingWhitespace: 3}, info)
	assert.Equal(t, 2, info.LineCount())

	// Mutating the copy does not affect the deindenter.
	info.LeadingWhitespace = 0
	assert.Equal(t, 3, d.Info().LeadingWhitespace)
}

func TestDeindenter_Changed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"a\n  b\n", false},
		{"a\n  b", false},
		{"  a\n  b\n", true},
		{"\na\n", true},
		{"a\n\n", true},
		{"a\n  \n", true},
	}

	for _, testCase := range tests {
		d, ok := deindent.New(testCase.input)
		require.True(t, ok)
		assert.Equal(t, testCase.want, d.Changed(), "Changed() for %q", testCase.input)
		assert.Equal(t, testCase.want, d.String() != testCase.input, "String() for %q", testCase.input)
	}
}

func TestDeindenter_Span(t *testing.T) {
	t.Parallel()

	input := "\n\n  a\n  b\n\n"
	d, ok := deindent.New(input)
	require.True(t, ok)

	start, end := d.Span()
	assert.Equal(t, "  a\n  b\n", input[start:end])
}

func TestDeindenter_Lines(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("x\n    a\n\n    b")
	require.True(t, ok)

	// "x" pins the indent to zero.
	lines := d.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, deindent.Line{Index: 3, Original: "    b", Rendered: "    b"}, lines[3])

	d, ok = deindent.New("\n    a\n\n    b")
	require.True(t, ok)

	lines = d.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, deindent.Line{Index: 1, Original: "    a\n", Rendered: "a\n"}, lines[0])
	assert.Equal(t, deindent.Line{Index: 2, Original: "\n", Rendered: "\n"}, lines[1])
	assert.Equal(t, deindent.Line{Index: 3, Original: "    b", Rendered: "b"}, lines[2])
}

func TestDeindenter_PreservesInputOutsideIndent(t *testing.T) {
	t.Parallel()

	// Rendered output equals the covered span minus exactly LeadingWhitespace
	// bytes per line.
	input := "\n\t\tone\n\t\t\ttwo\n\n\t\tthree\n\n\n"
	d, ok := deindent.New(input)
	require.True(t, ok)

	start, end := d.Span()
	var want strings.Builder
	for _, line := range strings.SplitAfter(input[start:end], "\n") {
		if line == "" {
			continue
		}
		if len(line) >= d.Info().LeadingWhitespace {
			line = line[d.Info().LeadingWhitespace:]
		}
		want.WriteString(line)
	}

	assert.Equal(t, want.String(), d.String())
	assert.Equal(t, "one\n\ttwo\n\nthree\n", d.String())
}

func TestDeindenter_InvalidUTF8Panics(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("  \xff\xfe\n")
	require.True(t, ok)

	assert.Panics(t, func() { _ = d.String() })
}

func indent(s, prefix string) string {
	lines := strings.SplitAfter(s, "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		b.WriteString(prefix + line)
	}
	return b.String()
}
