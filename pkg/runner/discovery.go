package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Discover expands opts.Paths into a sorted, de-duplicated list of absolute
// dllup source paths. Explicitly named files are returned when they match
// the extension and glob filters. Hidden entries are skipped during walks.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	disc := &discoverer{
		workDir: workDir,
		opts:    opts,
		exts:    opts.extensions(),
		seen:    make(map[string]struct{}),
		linked:  make(map[string]struct{}),
	}

	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := input
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		abs = filepath.Clean(abs)

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if disc.matches(abs) {
				disc.add(abs)
			}
			continue
		}
		if err := disc.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(disc.files)
	return disc.files, nil
}

type discoverer struct {
	workDir string
	opts    Options
	exts    []string
	seen    map[string]struct{}
	linked  map[string]struct{}
	files   []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchAny(d.rel(path), d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				if _, ok := d.linked[target]; ok {
					return nil
				}
				d.linked[target] = struct{}{}
				// Walk the target; WalkDir would not descend through the link.
				return d.walk(ctx, target)
			}
		}

		if d.matches(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

func (d *discoverer) matches(path string) bool {
	ext := filepath.Ext(path)
	if !slices.ContainsFunc(d.exts, func(want string) bool { return strings.EqualFold(want, ext) }) {
		return false
	}

	rel := d.rel(path)
	if matchAny(rel, d.opts.ExcludeGlobs) {
		return false
	}
	return len(d.opts.IncludeGlobs) == 0 || matchAny(rel, d.opts.IncludeGlobs)
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

func matchAny(path string, patterns []string) bool {
	return slices.ContainsFunc(patterns, func(pattern string) bool {
		return MatchGlob(path, pattern)
	})
}

// MatchGlob matches a slash-separated relative path against a glob pattern.
// A "**" segment matches zero or more whole path segments; other segments
// use filepath.Match syntax. A pattern without a slash also matches the base
// name, so "*.draft.dllu" excludes drafts in any directory. A pattern also
// matches every path below a matching directory.
func MatchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")

	if !strings.Contains(pattern, "/") && pattern != "**" {
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			return true
		}
	}
	return matchSegments(strings.Split(path, "/"), strings.Split(pattern, "/"))
}

func matchSegments(path, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for skip := 0; skip <= len(path); skip++ {
				if matchSegments(path[skip:], rest) {
					return true
				}
			}
			return false
		}
		if len(path) == 0 {
			return false
		}
		if ok, err := filepath.Match(pattern[0], path[0]); err != nil || !ok {
			return false
		}
		path, pattern = path[1:], pattern[1:]
	}
	// Pattern exhausted: a directory match covers everything beneath it.
	return true
}
