package pretty_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/deindent/internal/ui/pretty"
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/diff"
	"github.com/yaklabco/deindent/pkg/mdblocks"
	"github.com/yaklabco/deindent/pkg/runner"
)

func TestNewStylesColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	assert.Equal(t, "test", styles.Bold.Render("test"))
	assert.Equal(t, "test", styles.DiffAdd.Render("test"))
}

func TestIsColorEnabledAlways(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(config.ColorAlways, &buf))
}

func TestIsColorEnabledNever(t *testing.T) {
	t.Parallel()

	assert.False(t, pretty.IsColorEnabled(config.ColorNever, os.Stdout))
}

func TestIsColorEnabledAutoNonTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, &buf))
}

func TestIsColorEnabledNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(config.ColorAuto, os.Stdout))
}

func TestFormatDiff(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Empty(t, styles.FormatDiff(nil))

	d, ok := deindent.New("\n  a\n  b")
	require.True(t, ok)
	result := diff.Compute("x.txt", d)

	var want bytes.Buffer
	require.NoError(t, result.WriteUnified(&want))
	assert.Equal(t, want.String(), styles.FormatDiff(result))

	assert.Equal(t, "x.txt: 2 lines reindented, 1 blank line dropped\n", styles.FormatDiffStat(result))
}

func TestFormatDiffKeepsTabs(t *testing.T) {
	t.Parallel()

	d, ok := deindent.New("\t\ta\n\t\t\tb\n")
	require.True(t, ok)
	result := diff.Compute("tabs.go", d)

	var want bytes.Buffer
	require.NoError(t, result.WriteUnified(&want))
	assert.Equal(t, want.String(), pretty.NewStyles(false).FormatDiff(result))
	assert.Contains(t, want.String(), "+\tb\n")
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		mode  runner.Mode
		want  string
	}{
		{
			name:  "nothing",
			stats: runner.Stats{FilesProcessed: 2},
			mode:  runner.ModeCheck,
			want:  "Nothing to deindent (2 files checked)\n",
		},
		{
			name:  "check",
			stats: runner.Stats{FilesProcessed: 3, FilesChanged: 1, BytesRemoved: 1500},
			mode:  runner.ModeCheck,
			want:  "1 file would be deindented (1.5 kB), 2 unchanged\n",
		},
		{
			name: "write",
			stats: runner.Stats{
				FilesProcessed: 2, FilesChanged: 2, FilesWritten: 2, FilesBackedUp: 1,
				BytesRemoved: 12, FilesErrored: 1,
			},
			mode: runner.ModeWrite,
			want: "2 files deindented (12 B removed), 1 backed up, 1 failed\n",
		},
		{
			name:  "blank and skipped",
			stats: runner.Stats{FilesProcessed: 2, FilesAbsent: 1, FilesSkipped: 1},
			mode:  runner.ModePrint,
			want:  "Nothing to deindent, 1 blank, 1 skipped (2 files checked)\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, styles.FormatSummaryOneLine(testCase.stats, testCase.mode))
		})
	}
}

func TestFormatOutcomeLines(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	outcome := runner.FileOutcome{
		Path: "a.txt",
		Info: deindent.IndentInfo{FirstLine: 1, LastLine: 3, LeadingWhitespace: 4},
	}
	assert.Equal(t, "would deindent a.txt (4 columns, lines 2-4)\n", styles.FormatCheckFile(outcome))

	outcome.Error = errors.New("boom")
	assert.Equal(t, "error a.txt: boom\n", styles.FormatFileError(outcome))

	outcome.SkipReason = "binary file"
	assert.Equal(t, "skipped a.txt: binary file\n", styles.FormatSkipped(outcome))
}

func TestFormatInfo(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	info := deindent.IndentInfo{FirstLine: 1, LastLine: 2, LeadingWhitespace: 4}
	want := "-\n" +
		"  first line: 1\n" +
		"  last line:  2\n" +
		"  indent:     4\n" +
		"  lines:      2\n"
	assert.Equal(t, want, styles.FormatInfo("-", &info))

	assert.Equal(t, "-\n  no content\n", styles.FormatInfo("-", nil))
}

func TestFormatBlocks(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	info := deindent.IndentInfo{LastLine: 1, LeadingWhitespace: 2}
	blocks := []mdblocks.Block{
		{Kind: mdblocks.KindFenced, Language: "go", Line: 3, Info: &info, Changed: true},
		{Kind: mdblocks.KindIndented, Line: 9, Info: &info, Skipped: "indented code block"},
		{Kind: mdblocks.KindFenced, Line: 12},
	}

	want := "doc.md\n" +
		"  line 3     fenced go deindented 2 columns\n" +
		"  line 9     indented skipped: indented code block\n" +
		"  line 12    fenced empty\n"
	assert.Equal(t, want, styles.FormatBlocks("doc.md", blocks))
	assert.Equal(t, "doc.md\n  no code blocks\n", styles.FormatBlocks("doc.md", nil))
}
