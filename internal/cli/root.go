// Package cli provides the Cobra command structure for deindent.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/deindent/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root deindent command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := newDeindentCommand()
	rootCmd.Version = info.Version
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if debug {
			logging.SetLevel("debug")
		}
		cmd.SetContext(logging.WithLogger(commandContext(cmd), logging.Default()))
	}
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newInfoCommand())
	rootCmd.AddCommand(newBlocksCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter().ApplyToCommand(rootCmd)

	return rootCmd
}
