// Package main is the entry point for the deindent CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/deindent/internal/cli"
	"github.com/yaklabco/deindent/internal/logging"
)

// Build-time variables set via ldflags by the stave Build target.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// ErrChangesNeeded only selects the exit code; --check already reported.
		if !errors.Is(err, cli.ErrChangesNeeded) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
