package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/deindent/internal/logging"
	"github.com/yaklabco/deindent/internal/ui/pretty"
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/langdetect"
	"github.com/yaklabco/deindent/pkg/runner"
)

// fenceDetect is the --fence value that asks for language detection.
const fenceDetect = "auto"

type deindentFlags struct {
	fence string
}

func newDeindentCommand() *cobra.Command {
	var cfg config.Config
	flags := &deindentFlags{}

	cmd := &cobra.Command{
		Use:   "deindent [paths...]",
		Short: "Strip common leading indentation from text",
		Long:  deindentLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeindent(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "report files that would change and exit 1 if any would")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "print a unified diff instead of the deindented text")
	cmd.Flags().StringVar(&flags.fence, "fence", "", "wrap output in a Markdown code fence tagged with `lang` (detected if omitted)")
	cmd.Flags().Lookup("fence").NoOptDefVal = fenceDetect
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to process in directories (default all)")
	cmd.Flags().BoolVar(&cfg.FollowSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backups when writing")

	return cmd
}

const deindentLongDescription = `deindent removes the indentation shared by every non-blank line of its
input, along with blank lines before the first and after the last line
with content. Relative indentation, line endings and a missing final
newline are preserved.

With no paths, or the path "-", text is read from standard input and the
result is written to standard output. Directories are walked recursively.

Examples:
  pbpaste | deindent              # Deindent the clipboard
  deindent snippet.go             # Print a deindented copy
  deindent -w src/                # Rewrite files in place
  deindent --check docs/          # Exit 1 if anything would change
  deindent --diff snippet.py      # Show what would change
  deindent --fence < snippet.rs   # Wrap the output in a Markdown fence`

func runDeindent(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *deindentFlags) error {
	if cmd.Flags().Changed("fence") {
		cliCfg.Wrap = true
		if flags.fence != fenceDetect {
			cliCfg.Fence.Language = flags.fence
		}
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)
	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
	errStyles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, cmd.ErrOrStderr()))

	mode := runner.ModeFromConfig(cfg)
	r := runner.New(mode)
	r.Backup = runner.BackupConfigFromConfig(cfg)

	stdin, err := useStdin(cmd, args)
	if err != nil {
		return err
	}

	logger.Debug("deindent",
		logging.FieldPaths, args,
		logging.FieldWrite, cfg.Write,
		logging.FieldCheck, cfg.Check,
		logging.FieldDiff, cfg.Diff,
		logging.FieldJobs, cfg.Jobs,
	)

	var result *runner.Result
	if stdin {
		if mode == runner.ModeWrite {
			return usageError("--write needs file paths")
		}
		result = &runner.Result{}
		outcome := r.ProcessReader(ctx, cmd.InOrStdin())
		result.Files = append(result.Files, outcome)
		if outcome.Error != nil {
			return outcome.Error
		}
		if outcome.Changed {
			result.Stats.FilesChanged++
		}
	} else {
		result, err = r.Run(ctx, runner.OptionsFromConfig(cfg, args))
		if err != nil {
			return fmt.Errorf("deindent: %w", err)
		}
	}

	multiple := len(result.Files) > 1
	for _, outcome := range result.Files {
		if err := reportOutcome(cmd, cfg, mode, styles, errStyles, outcome, multiple); err != nil {
			return err
		}
	}

	if !stdin && (mode == runner.ModeWrite || mode == runner.ModeCheck) {
		fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatSummaryOneLine(result.Stats, mode))
	}

	if err := result.Err(); err != nil {
		return err
	}
	if cfg.Check && result.HasChanges() {
		return ErrChangesNeeded
	}
	return nil
}

// useStdin reports whether input comes from stdin. It refuses to wait on an
// interactive terminal.
func useStdin(cmd *cobra.Command, args []string) (bool, error) {
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == runner.StdinPath:
	default:
		for _, arg := range args {
			if arg == runner.StdinPath {
				return false, usageError("%q cannot be combined with other paths", runner.StdinPath)
			}
		}
		return false, nil
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return false, usageError("no input: pass paths or pipe text on standard input")
	}
	return true, nil
}

func reportOutcome(
	cmd *cobra.Command,
	cfg *config.Config,
	mode runner.Mode,
	styles, errStyles *pretty.Styles,
	outcome runner.FileOutcome,
	multiple bool,
) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	outcome.Path = displayPath(outcome.Path)
	if outcome.Diff != nil {
		outcome.Diff.Path = outcome.Path
	}

	switch {
	case outcome.Error != nil:
		fmt.Fprint(errOut, errStyles.FormatFileError(outcome))
		return nil
	case outcome.Skipped:
		fmt.Fprint(errOut, errStyles.FormatSkipped(outcome))
		return nil
	case outcome.Absent:
		return nil
	}

	switch mode {
	case runner.ModeDiff:
		fmt.Fprint(out, styles.FormatDiff(outcome.Diff))
		fmt.Fprint(errOut, errStyles.FormatDiffStat(outcome.Diff))
	case runner.ModeCheck:
		if outcome.Changed {
			fmt.Fprint(out, styles.FormatCheckFile(outcome))
		}
	case runner.ModeWrite:
	case runner.ModePrint:
		if multiple {
			fmt.Fprintf(out, "%s\n", styles.FilePath.Render("==> "+outcome.Path+" <=="))
		}
		if err := writeRendered(out, cfg, outcome); err != nil {
			return err
		}
	}
	return nil
}

// displayPath shortens absolute paths below the working directory.
func displayPath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// writeRendered prints the deindented text, fenced if --fence was given.
func writeRendered(out io.Writer, cfg *config.Config, outcome runner.FileOutcome) error {
	if !cfg.Wrap {
		if _, err := out.Write(outcome.Rendered); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}

	if _, err := io.WriteString(out, Fence(cfg.Fence, outcome.Path, outcome.Rendered)); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// Fence wraps text in a Markdown code fence. The language comes from fence
// or, when unset, is detected from path and text. The marker is lengthened
// past the longest run of its character in text so the fence cannot close
// early.
func Fence(fence config.FenceConfig, path string, text []byte) string {
	marker := fence.Marker
	if marker == "" {
		marker = config.DefaultFenceMarker
	}
	if run := longestRun(text, marker[0]); run >= len(marker) {
		marker = strings.Repeat(marker[:1], run+1)
	}

	lang := fence.Language
	if lang == "" {
		if path == runner.StdinPath {
			lang = langdetect.Detect(text)
		} else {
			lang = langdetect.DetectFile(path, text)
		}
	}

	var builder strings.Builder
	builder.WriteString(marker + lang + "\n")
	builder.Write(text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		builder.WriteByte('\n')
	}
	builder.WriteString(marker + "\n")
	return builder.String()
}

// longestRun returns the length of the longest run of c in text.
func longestRun(text []byte, c byte) int {
	longest, current := 0, 0
	for _, b := range text {
		if b != c {
			current = 0
			continue
		}
		current++
		longest = max(longest, current)
	}
	return longest
}
