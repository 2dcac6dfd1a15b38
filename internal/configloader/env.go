package configloader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/deindent/pkg/config"
)

// EnvPrefix is the prefix for all deindent environment variables.
const EnvPrefix = "DEINDENT_"

// envVar maps one environment variable onto the configuration.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"JOBS": {
		description: "Number of files processed in parallel (0 = one per CPU)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated file extensions processed in directories",
		apply: func(cfg *config.Config, value string) error {
			cfg.Extensions = splitList(value)
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated glob patterns to skip",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = splitList(value)
			return nil
		},
	},
	"FOLLOW_SYMLINKS": {
		description: "Walk into symlinked directories: true or false",
		apply: func(cfg *config.Config, value string) error {
			follow, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			cfg.FollowSymlinks = follow
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		description: "Back up files before --write rewrites them: true or false",
		apply: func(cfg *config.Config, value string) error {
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
			}
			cfg.Backups.Enabled = enabled
			return nil
		},
	},
	"FENCE_LANGUAGE": {
		description: "Language tag used by --fence instead of detecting one",
		apply: func(cfg *config.Config, value string) error {
			cfg.Fence.Language = value
			return nil
		},
	},
	"FORMAT": {
		description: "Report format: text, json or yaml",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
}

// LoadFromEnv applies DEINDENT_* overrides to cfg using lookup.
// Empty values are ignored.
func LoadFromEnv(cfg *config.Config, lookup func(string) (string, bool)) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := EnvPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ListEnvVars returns every supported environment variable with a description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[EnvPrefix+suffix] = v.description
	}
	return out
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// splitList parses a comma-separated list, dropping empty elements.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
