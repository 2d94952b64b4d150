package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/dllup/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("creates and replaces", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "spans.json")

		for _, content := range []string{"[]", `[{"category":"heading"}]`} {
			if err := fsutil.WriteAtomic(ctx, path, []byte(content), 0); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}
			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(got) != content {
				t.Errorf("content = %q, want %q", got, content)
			}
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != fsutil.DefaultFileMode {
			t.Errorf("mode = %o, want %o", stat.Mode().Perm(), fsutil.DefaultFileMode)
		}
	})

	t.Run("honours mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.txt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		stat, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if stat.Mode().Perm() != 0600 {
			t.Errorf("mode = %o, want 600", stat.Mode().Perm())
		}
	})

	t.Run("cancelled context leaves nothing behind", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "out.txt")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not have been created")
		}
	})

	t.Run("missing parent directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "missing", "out.txt")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for invalid path")
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp.") {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})
}

func TestWriteAtomicIfChanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "report.txt")

	steps := []struct {
		content string
		want    bool
	}{
		{"first", true},
		{"first", false},
		{"second", true},
	}

	for _, step := range steps {
		changed, err := fsutil.WriteAtomicIfChanged(ctx, path, []byte(step.content), 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged(%q) error = %v", step.content, err)
		}
		if changed != step.want {
			t.Errorf("WriteAtomicIfChanged(%q) = %v, want %v", step.content, changed, step.want)
		}
	}
}
