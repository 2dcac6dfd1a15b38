package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deindent/internal/ui/pretty"
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/deindent"
	"github.com/yaklabco/deindent/pkg/runner"
)

// InfoReport is the machine-readable indentation summary of one input.
type InfoReport struct {
	Path string `json:"path" yaml:"path"`

	// Info is nil when the input is empty or whitespace-only.
	Info *deindent.IndentInfo `json:"info" yaml:"info"`

	// Changed reports whether deindenting would alter the input.
	Changed bool `json:"changed" yaml:"changed"`
}

func newInfoCommand() *cobra.Command {
	var cfg config.Config
	var format string

	cmd := &cobra.Command{
		Use:   "info [paths...]",
		Short: "Show the indentation deindent would remove",
		Long: `Print the first and last lines with content and the common indentation
width of each input, without changing anything. Line numbers are zero-based.

Examples:
  deindent info < snippet.txt        # Inspect standard input
  deindent info --format json src/   # JSON report for a directory`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				cfg.Format = config.OutputFormat(format)
			}
			return runInfo(cmd, args, &cfg)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(config.FormatText), "output format: text, json, yaml")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "ext", nil, "file extensions to process in directories (default all)")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string, cliCfg *config.Config) error {
	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	r := runner.New(runner.ModeCheck)

	stdin, err := useStdin(cmd, args)
	if err != nil {
		return err
	}

	var outcomes []runner.FileOutcome
	if stdin {
		outcomes = append(outcomes, r.ProcessReader(ctx, cmd.InOrStdin()))
	} else {
		result, err := r.Run(ctx, runner.OptionsFromConfig(cfg, args))
		if err != nil {
			return fmt.Errorf("info: %w", err)
		}
		outcomes = result.Files
	}

	reports := make([]InfoReport, 0, len(outcomes))
	result := &runner.Result{Files: outcomes}
	for _, outcome := range outcomes {
		if outcome.Error != nil || outcome.Skipped {
			continue
		}
		report := InfoReport{Path: displayPath(outcome.Path), Changed: outcome.Changed}
		if !outcome.Absent {
			info := outcome.Info
			report.Info = &info
		}
		reports = append(reports, report)
	}

	out := cmd.OutOrStdout()
	if err := writeInfo(out, cfg, reports); err != nil {
		return err
	}

	errStyles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, cmd.ErrOrStderr()))
	for _, outcome := range outcomes {
		switch {
		case outcome.Error != nil:
			fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatFileError(outcome))
		case outcome.Skipped:
			fmt.Fprint(cmd.ErrOrStderr(), errStyles.FormatSkipped(outcome))
		}
	}
	return result.Err()
}

func writeInfo(out io.Writer, cfg *config.Config, reports []InfoReport) error {
	switch cfg.Format {
	case config.FormatJSON, config.FormatYAML:
		return writeStructured(out, cfg.Format, reports)
	default:
		styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
		for _, report := range reports {
			if _, err := io.WriteString(out, styles.FormatInfo(report.Path, report.Info)); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		return nil
	}
}
