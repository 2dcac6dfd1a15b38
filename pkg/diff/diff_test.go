package diff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/diff"
)

func compute(t *testing.T, input string) *diff.Diff {
	t.Helper()

	d, ok := deindent.New(input)
	require.True(t, ok)
	return diff.Compute("file.txt", d)
}

func TestComputeUnchanged(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("a\n  b\n")
	require.True(t, ok)
	assert.Nil(t, diff.Compute("file.txt", d))
	assert.Nil(t, diff.Compute("file.txt", nil))
}

func TestComputeReindented(t *testing.T) {
	t.Parallel()

	result := compute(t, "  a\n  b\n")
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Reindented)
	assert.Equal(t, 0, result.Dropped)
	require.Len(t, result.Hunks, 1)

	hunk := result.Hunks[0]
	assert.Equal(t, "@@ -1,2 +1,2 @@", hunk.Header())
	assert.Equal(t, []diff.Line{
		{Kind: diff.Remove, Text: "  a"},
		{Kind: diff.Remove, Text: "  b"},
		{Kind: diff.Add, Text: "a"},
		{Kind: diff.Add, Text: "b"},
	}, hunk.Lines)
}

func TestComputeDroppedLines(t *testing.T) {
	t.Parallel()

	result := compute(t, "\n\nhello\n\n")
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Reindented)
	assert.Equal(t, 3, result.Dropped)
	require.Len(t, result.Hunks, 1)
	assert.Equal(t, "@@ -1,4 +1,1 @@", result.Hunks[0].Header())
}

func TestComputeBlankLineAsLongAsIndent(t *testing.T) {
	t.Parallel()

	// " \n" is exactly two bytes, so stripping the indent leaves nothing.
	result := compute(t, "  a\n \n  b\n")
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Reindented)
	assert.Equal(t, 1, result.Dropped)
	require.Len(t, result.Hunks, 1)

	var buf bytes.Buffer
	require.NoError(t, result.WriteUnified(&buf))

	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,3 +1,2 @@\n" +
		"-  a\n" +
		"- \n" +
		"-  b\n" +
		"+a\n" +
		"+b\n"
	assert.Equal(t, want, buf.String())
	assert.NotContains(t, buf.String(), "No newline")
}

func TestComputeSeparateHunks(t *testing.T) {
	t.Parallel()

	// Leading blank lines and trailing blank lines far apart give two hunks.
	input := "\n" + "a\nb\nc\nd\ne\nf\ng\nh\n" + "\n"
	result := compute(t, input)
	require.NotNil(t, result)
	require.Len(t, result.Hunks, 2)

	assert.Equal(t, "@@ -1,4 +1,3 @@", result.Hunks[0].Header())
	assert.Equal(t, "@@ -7,4 +6,3 @@", result.Hunks[1].Header())
}

func TestWriteUnified(t *testing.T) {
	t.Parallel()

	result := compute(t, "    x\n      y")
	require.NotNil(t, result)

	var buf bytes.Buffer
	require.NoError(t, result.WriteUnified(&buf))

	want := "--- a/file.txt\n" +
		"+++ b/file.txt\n" +
		"@@ -1,2 +1,2 @@\n" +
		"-    x\n" +
		"-      y\n" +
		"\\ No newline at end of file\n" +
		"+x\n" +
		"+  y\n" +
		"\\ No newline at end of file\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteUnifiedNil(t *testing.T) {
	t.Parallel()

	var result *diff.Diff
	var buf bytes.Buffer
	require.NoError(t, result.WriteUnified(&buf))
	assert.Empty(t, buf.String())
}

func TestKindPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", diff.Context.Prefix())
	assert.Equal(t, "-", diff.Remove.Prefix())
	assert.Equal(t, "+", diff.Add.Prefix())
}
