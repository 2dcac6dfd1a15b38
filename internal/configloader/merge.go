package configloader

import "github.com/yaklabco/deindent/pkg/config"

// merge returns base overlaid with override.
//   - Scalars: non-zero override values win.
//   - Slices: a non-nil override slice replaces the base slice.
//   - Booleans: only true overrides, so a file cannot unset a CLI flag.
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.FollowSymlinks {
		result.FollowSymlinks = true
	}

	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}
	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}

	if override.Fence.Language != "" {
		result.Fence.Language = override.Fence.Language
	}
	if override.Fence.Marker != "" {
		result.Fence.Marker = override.Fence.Marker
	}

	result.Write = result.Write || override.Write
	result.Check = result.Check || override.Check
	result.Diff = result.Diff || override.Diff
	result.Wrap = result.Wrap || override.Wrap
	result.NoBackups = result.NoBackups || override.NoBackups

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}

	return result
}
