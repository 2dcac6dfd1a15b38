package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deindent/internal/logging"
	"github.com/yaklabco/deindent/internal/ui/pretty"
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/fsutil"
	"github.com/yaklabco/deindent/pkg/mdblocks"
	"github.com/yaklabco/deindent/pkg/runner"
)

// BlocksReport lists the code blocks of one Markdown document.
type BlocksReport struct {
	Path    string           `json:"path" yaml:"path"`
	Blocks  []mdblocks.Block `json:"blocks" yaml:"blocks"`
	Changed bool             `json:"changed" yaml:"changed"`
	Written bool             `json:"written,omitempty" yaml:"written,omitempty"`
}

type blocksFlags struct {
	list   bool
	format string
}

func newBlocksCommand() *cobra.Command {
	var cfg config.Config
	flags := &blocksFlags{}

	cmd := &cobra.Command{
		Use:   "blocks [paths...]",
		Short: "Deindent code blocks inside Markdown documents",
		Long: `Deindent the body of every fenced code block in Markdown documents,
leaving the rest of the document untouched. Indented code blocks are
listed but never changed, since their indentation is part of the syntax.

With no paths, or the path "-", a document is read from standard input.
Directories are searched for .md and .markdown files.

Examples:
  deindent blocks < README.md         # Print the rewritten document
  deindent blocks -w docs/            # Rewrite documents in place
  deindent blocks --check docs/       # Exit 1 if any block would change
  deindent blocks --list README.md    # List the code blocks found`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Format = config.OutputFormat(flags.format)
			}
			return runBlocks(cmd, args, &cfg, flags)
		},
	}

	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite documents in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit 1 if any block would change")
	cmd.Flags().BoolVar(&flags.list, "list", false, "list code blocks instead of printing documents")
	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatText), "list format: text, json, yaml")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&cfg.FollowSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backups when writing")

	return cmd
}

// markdownExtensions are the files blocks looks for in directories.
func markdownExtensions() []string {
	return []string{".md", ".markdown"}
}

func runBlocks(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *blocksFlags) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	rewriter := mdblocks.New()

	stdin, err := useStdin(cmd, args)
	if err != nil {
		return err
	}

	var reports []BlocksReport
	out := cmd.OutOrStdout()

	if stdin {
		if cfg.Write {
			return usageError("--write needs file paths")
		}
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		result, err := rewriter.Rewrite(ctx, content)
		if err != nil {
			return fmt.Errorf("rewrite stdin: %w", err)
		}
		reports = append(reports, BlocksReport{Path: runner.StdinPath, Blocks: result.Blocks, Changed: result.Changed})
		if !flags.list && !cfg.Check {
			if _, err := out.Write(result.Content); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	} else {
		opts := runner.OptionsFromConfig(cfg, args)
		opts.Extensions = markdownExtensions()

		files, err := runner.Discover(ctx, opts)
		if err != nil {
			return fmt.Errorf("blocks: %w", err)
		}

		for _, path := range files {
			report, content, err := rewriteDocument(cmd, cfg, rewriter, path)
			if err != nil {
				return err
			}
			reports = append(reports, report)

			if !flags.list && !cfg.Check && !cfg.Write {
				if len(files) > 1 {
					fmt.Fprintf(out, "==> %s <==\n", report.Path)
				}
				if _, err := out.Write(content); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			}
		}
	}

	if flags.list {
		if err := writeBlocks(out, cfg, reports); err != nil {
			return err
		}
	}

	changed := 0
	for _, report := range reports {
		if report.Changed {
			changed++
			if cfg.Check && !flags.list {
				fmt.Fprintf(out, "would deindent code blocks in %s\n", report.Path)
			}
		}
	}

	if cfg.Check && changed > 0 {
		return ErrChangesNeeded
	}
	return nil
}

// rewriteDocument rewrites the code blocks of one file, writing it back when
// --write is set. It returns the rewritten content.
func rewriteDocument(
	cmd *cobra.Command,
	cfg *config.Config,
	rewriter *mdblocks.Rewriter,
	path string,
) (BlocksReport, []byte, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return BlocksReport{}, nil, err
	}

	result, err := rewriter.Rewrite(ctx, content)
	if err != nil {
		return BlocksReport{}, nil, fmt.Errorf("rewrite %s: %w", path, err)
	}

	report := BlocksReport{Path: displayPath(path), Blocks: result.Blocks, Changed: result.Changed}
	logger.Debug("rewrote code blocks",
		logging.FieldPath, path,
		logging.FieldBlocks, len(result.Blocks),
		logging.FieldChanged, result.Changed,
	)

	if !cfg.Write || !result.Changed {
		return report, result.Content, nil
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		return report, nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		logger.Warn("skipping file", logging.FieldPath, path, "reason", "file modified during processing")
		return report, result.Content, nil
	}

	if _, err := fsutil.CreateBackup(ctx, path, content, info.Mode, runner.BackupConfigFromConfig(cfg)); err != nil {
		return report, nil, fmt.Errorf("create backup: %w", err)
	}
	written, err := fsutil.WriteAtomicIfChanged(ctx, path, result.Content, info.Mode)
	if err != nil {
		return report, nil, fmt.Errorf("write %s: %w", path, err)
	}
	report.Written = written

	return report, result.Content, nil
}

func writeBlocks(out io.Writer, cfg *config.Config, reports []BlocksReport) error {
	switch cfg.Format {
	case config.FormatJSON, config.FormatYAML:
		return writeStructured(out, cfg.Format, reports)
	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
		for _, report := range reports {
			if _, err := io.WriteString(out, styles.FormatBlocks(report.Path, report.Blocks)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}
}
