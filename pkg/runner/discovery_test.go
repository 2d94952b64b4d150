package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/runner"
)

// tree creates files (with parents) under a fresh temp dir and returns it.
func tree(t *testing.T, files ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# "+name+"\n"), 0o644))
	}
	return dir
}

func abs(dir string, names ...string) []string {
	paths := make([]string, 0, len(names))
	for _, name := range names {
		paths = append(paths, filepath.Join(dir, filepath.FromSlash(name)))
	}
	return paths
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := []string{
		"index.dllu",
		"posts/first.dllup",
		"posts/second.DLLU",
		"posts/drafts/wip.dllu",
		"notes.md",
		".hidden.dllu",
		".cache/cached.dllu",
		"src/main.go",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "default extensions skip hidden entries",
			opts: runner.Options{},
			want: []string{"index.dllu", "posts/drafts/wip.dllu", "posts/first.dllup", "posts/second.DLLU"},
		},
		{
			name: "custom extensions",
			opts: runner.Options{Extensions: []string{".md"}},
			want: []string{"notes.md"},
		},
		{
			name: "exclude prunes directories",
			opts: runner.Options{ExcludeGlobs: []string{"posts/drafts"}},
			want: []string{"index.dllu", "posts/first.dllup", "posts/second.DLLU"},
		},
		{
			name: "exclude with double star",
			opts: runner.Options{ExcludeGlobs: []string{"**/drafts/**"}},
			want: []string{"index.dllu", "posts/first.dllup", "posts/second.DLLU"},
		},
		{
			name: "exclude by base name",
			opts: runner.Options{ExcludeGlobs: []string{"*.dllup"}},
			want: []string{"index.dllu", "posts/drafts/wip.dllu", "posts/second.DLLU"},
		},
		{
			name: "include restricts",
			opts: runner.Options{IncludeGlobs: []string{"posts/*"}},
			want: []string{"posts/drafts/wip.dllu", "posts/first.dllup", "posts/second.DLLU"},
		},
		{
			name: "multiple paths are de-duplicated",
			opts: runner.Options{Paths: []string{"posts", "posts/first.dllup", "."}},
			want: []string{"index.dllu", "posts/drafts/wip.dllu", "posts/first.dllup", "posts/second.DLLU"},
		},
		{
			name: "explicit file with other extension is skipped",
			opts: runner.Options{Paths: []string{"notes.md"}},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files...)
			tt.opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), tt.opts)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, abs(dir, tt.want...), got)
		})
	}
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: t.TempDir(),
	})
	require.Error(t, err)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: tree(t, "a.dllu")})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	dir := tree(t, "real/post.dllu")
	outside := tree(t, "shared/linked.dllu")
	if err := os.Symlink(filepath.Join(outside, "shared"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	// A cycle must not recurse forever.
	if err := os.Symlink(dir, filepath.Join(dir, "real", "loop")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, abs(dir, "real/post.dllu"), got)

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Contains(t, got, filepath.Join(outside, "shared", "linked.dllu"))
	assert.Contains(t, got, filepath.Join(dir, "real", "post.dllu"))
}

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"posts/a.dllu", "posts/*.dllu", true},
		{"posts/a.dllu", "*.dllu", true},
		{"posts/deep/a.dllu", "posts/*.dllu", false},
		{"posts/deep/a.dllu", "posts/**", true},
		{"posts/deep/a.dllu", "posts/**/a.dllu", true},
		{"posts/a.dllu", "posts/**/a.dllu", true},
		{"a/vendor/b.dllu", "**/vendor", true},
		{"vendors/b.dllu", "**/vendor", false},
		{"drafts/x.dllu", "drafts/", true},
		{"index.dllu", "**", true},
		{"index.dllu", "[x", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, runner.MatchGlob(tt.path, tt.pattern))
		})
	}
}
