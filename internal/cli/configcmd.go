package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deindent/internal/configloader"
	"github.com/yaklabco/deindent/internal/logging"
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/fsutil"
)

// configFileHeader is written above the generated configuration.
const configFileHeader = `# deindent configuration
#
# extensions: file extensions processed when a directory is given (all if empty)
# ignore:     glob patterns skipped while walking directories ("vendor/**", "*.bak")
# jobs:       files processed in parallel (0 = one per CPU)
# follow_symlinks: walk into symlinked directories
# backups:    copy files to <name>.deindent.bak before --write rewrites them
# fence:      language tag and marker used by --fence
#
# Every setting can be overridden with a DEINDENT_* environment variable.`

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage deindent configuration",
	}

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigEnvCommand())

	return cmd
}

type configInitFlags struct {
	force  bool
	output string
}

func newConfigInitCommand() *cobra.Command {
	flags := &configInitFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .deindent.yml with the default settings",
		Long: `Create a .deindent.yml configuration file in the current directory with
the default settings and a short description of each.

Examples:
  deindent config init                  Create .deindent.yml
  deindent config init --force          Overwrite an existing file
  deindent config init -o ci/deindent.yml  Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runConfigInit(cmd *cobra.Command, flags *configInitFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, err = os.Stat(absPath)
	switch {
	case err == nil && !flags.force:
		return usageError("file %q already exists; use --force to overwrite", flags.output)
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", flags.output, err)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(configFileHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", flags.output)
	return nil
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration that results from merging the user config, the
project .deindent.yml, --config and DEINDENT_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			content, err := cfg.ToYAML()
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			if _, err := cmd.OutOrStdout().Write(content); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		},
	}
}

func newConfigEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the DEINDENT_* environment variables",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			vars := configloader.ListEnvVars()
			names := make([]string, 0, len(vars))
			width := 0
			for name := range vars {
				names = append(names, name)
				width = max(width, len(name))
			}
			sort.Strings(names)

			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, name, vars[name])
			}
		},
	}
}
