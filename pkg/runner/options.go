// Package runner deindents many files at once: it discovers files, processes
// them on a worker pool and collects per-file outcomes in a stable order.
package runner

import (
	"github.com/yaklabco/deindent/pkg/config"
	"github.com/yaklabco/deindent/pkg/fsutil"
)

// Mode selects what happens to a file once it has been deindented.
type Mode int

const (
	// ModePrint keeps the rendered text in the outcome for the caller to print.
	ModePrint Mode = iota

	// ModeWrite rewrites changed files in place.
	ModeWrite

	// ModeCheck only records whether files would change.
	ModeCheck

	// ModeDiff records a diff for every changed file.
	ModeDiff
)

// String returns the mode name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeDiff:
		return "diff"
	default:
		return "print"
	}
}

// ModeFromConfig picks the mode implied by the CLI flags in cfg.
// Diff wins over check, and check over write. Diff reports changes
// exactly like check, so --check --diff shows what --check found.
func ModeFromConfig(cfg *config.Config) Mode {
	switch {
	case cfg == nil:
		return ModePrint
	case cfg.Diff:
		return ModeDiff
	case cfg.Check:
		return ModeCheck
	case cfg.Write:
		return ModeWrite
	default:
		return ModePrint
	}
}

// BackupConfigFromConfig derives the backup settings for ModeWrite.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Mode: fsutil.BackupModeSidecar}
	}
	return fsutil.BackupConfig{
		Enabled: cfg.BackupsEnabled(),
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// Options controls which files a run covers.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions filters files found while walking a directory
	// (lowercase, leading dot). Empty matches every file. Files named
	// directly in Paths are never filtered by extension.
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to
	// WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks walks symlinked directories.
	FollowSymlinks bool

	// Jobs caps the number of concurrent workers; 0 or less means one per CPU.
	Jobs int
}

// OptionsFromConfig builds discovery options for paths from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg == nil {
		return opts
	}
	opts.Extensions = cfg.Extensions
	opts.ExcludeGlobs = cfg.Ignore
	opts.Jobs = cfg.Jobs
	opts.FollowSymlinks = cfg.FollowSymlinks
	return opts
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
