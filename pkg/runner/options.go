// Package runner classifies many dllup files concurrently.
package runner

import "github.com/yaklabco/dllup/pkg/config"

// Options controls which files a run visits and how many workers it uses.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob patterns.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions lists the file extensions treated as dllup sources,
	// compared case-insensitively. Empty means config.DefaultExtensions().
	Extensions []string

	// IncludeGlobs restricts discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skips matching files and prunes matching directories.
	ExcludeGlobs []string

	// FollowSymlinks descends into symlinked directories.
	FollowSymlinks bool

	// Jobs is the worker count. Zero or negative means runtime.NumCPU().
	Jobs int
}

// OptionsFromConfig derives discovery options from a resolved configuration.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	opts := Options{Paths: paths}
	if cfg != nil {
		opts.Extensions = cfg.Extensions
		opts.ExcludeGlobs = cfg.Ignore
		opts.Jobs = cfg.Jobs
	}
	return opts
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
