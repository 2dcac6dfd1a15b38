// Package config defines the configuration types for deindent.
// These types are pure data structures; discovery and merging live in
// internal/configloader.
package config

// OutputFormat specifies how results are printed.
type OutputFormat string

const (
	// FormatText prints deindented text (or a plain report for info).
	FormatText OutputFormat = "text"

	// FormatJSON prints indentation info as JSON.
	FormatJSON OutputFormat = "json"

	// FormatYAML prints indentation info as YAML.
	FormatYAML OutputFormat = "yaml"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ColorMode controls styled output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether m is a known color mode.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// BackupsConfig controls backups taken before files are rewritten in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// FenceConfig controls --fence output.
type FenceConfig struct {
	// Language is the fence tag. Empty means detect it from the content.
	Language string `yaml:"language,omitempty"`

	// Marker is the fence string, "```" by default.
	Marker string `yaml:"marker,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Extensions lists the file extensions processed when a directory is
	// given. Empty means every regular file.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// Jobs is the number of files processed in parallel; 0 means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`

	// FollowSymlinks walks into symlinked directories. Each real directory
	// is walked at most once, so symlink loops terminate.
	FollowSymlinks bool `yaml:"follow_symlinks,omitempty"`

	// Backups configures backups for --write.
	Backups BackupsConfig `yaml:"backups"`

	// Fence configures --fence.
	Fence FenceConfig `yaml:"fence,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place instead of printing them.
	Write bool `yaml:"-"`

	// Check reports files that would change and fails if any would.
	Check bool `yaml:"-"`

	// Diff prints a diff instead of the deindented text.
	Diff bool `yaml:"-"`

	// Wrap wraps printed output in a Markdown code fence.
	Wrap bool `yaml:"-"`

	// NoBackups disables backups regardless of Backups.Enabled.
	NoBackups bool `yaml:"-"`

	// Format is the output format for reports.
	Format OutputFormat `yaml:"-"`

	// Color controls styled output.
	Color ColorMode `yaml:"-"`
}

// DefaultFenceMarker is the fence used when none is configured.
const DefaultFenceMarker = "```"

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Fence: FenceConfig{
			Marker: DefaultFenceMarker,
		},
		Format: FormatText,
		Color:  ColorAuto,
	}
}

// BackupsEnabled reports whether a backup should be taken before writing.
func (c *Config) BackupsEnabled() bool {
	return c.Backups.Enabled && !c.NoBackups && c.Backups.Mode != "none"
}
