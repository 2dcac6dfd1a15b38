package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands opts.Paths into a sorted, de-duplicated list of absolute
// file paths. Directories are walked recursively, skipping hidden entries,
// excluded paths and files whose extension is not in opts.Extensions.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	seen := make(map[string]struct{})
	visited := make(map[string]struct{})
	var files []string
	add := func(file string) {
		if _, ok := seen[file]; ok {
			return
		}
		seen[file] = struct{}{}
		files = append(files, file)
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			add(absPath)
			continue
		}

		found, err := walkDirectory(ctx, absPath, workDir, opts, visited)
		if err != nil {
			return nil, err
		}
		for _, file := range found {
			add(file)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walkDirectory collects the files below root. visited holds the real paths
// of directories already walked; a root found there is skipped, which ends
// symlink loops.
func walkDirectory(
	ctx context.Context,
	root, workDir string,
	opts Options,
	visited map[string]struct{},
) ([]string, error) {
	if realRoot, err := filepath.EvalSymlinks(root); err == nil {
		if _, ok := visited[realRoot]; ok {
			return nil, nil
		}
		visited[realRoot] = struct{}{}
	}

	var files []string

	err := filepath.WalkDir(root, func(current string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		rel := relativeTo(workDir, current)
		hidden := current != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || isExcluded(rel, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(current)
			if err != nil {
				// Broken symlink.
				return nil //nolint:nilerr // Intentionally skip
			}
			if target.IsDir() {
				if !opts.FollowSymlinks {
					return nil
				}
				resolved, err := filepath.EvalSymlinks(current)
				if err != nil {
					return nil //nolint:nilerr // Intentionally skip
				}
				sub, err := walkDirectory(ctx, resolved, workDir, opts, visited)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		} else if !entry.Type().IsRegular() {
			return nil
		}

		if hasExtension(current, opts.Extensions) && !isExcluded(rel, opts.ExcludeGlobs) {
			files = append(files, current)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

func relativeTo(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return filepath.ToSlash(target)
	}
	return filepath.ToSlash(rel)
}

// hasExtension reports whether file has one of extensions; an empty list
// matches everything.
func hasExtension(file string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := filepath.Ext(file)
	for _, want := range extensions {
		if strings.EqualFold(want, ext) {
			return true
		}
	}
	return false
}

func isExcluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// MatchGlob reports whether the slash-separated relative path name matches
// pattern. Besides the path.Match syntax, a "**" segment matches any number
// of directories, and a pattern without a slash also matches the base name.
// "vendor/**" therefore matches everything below vendor, and "*.bak"
// matches backups at any depth.
func MatchGlob(pattern, name string) bool {
	pattern = strings.Trim(filepath.ToSlash(pattern), "/")
	name = strings.Trim(filepath.ToSlash(name), "/")

	if !strings.Contains(pattern, "/") {
		if ok, _ := path.Match(pattern, path.Base(name)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(name, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(name); skip++ {
				if matchSegments(rest, name[skip:]) {
					return true
				}
			}
			return false
		}

		if len(name) == 0 {
			return false
		}
		if ok, err := path.Match(pattern[0], name[0]); err != nil || !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}
