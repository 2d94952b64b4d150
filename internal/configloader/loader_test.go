package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/dllup/pkg/config"
)

func isolated(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "ref: main\n")

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.DuplicateRefs != config.DuplicateRefsLast {
		t.Errorf("expected duplicate_refs %q, got %q", config.DuplicateRefsLast, result.Config.DuplicateRefs)
	}
	if !config.Enabled(result.Config.HeadingAnchors) {
		t.Error("expected heading anchors on by default")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".dllup.yml"), `
grammars:
  - go
  - md=markdown.gfm
duplicate_refs: first
guess_untagged: true
`)

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if got := strings.Join(cfg.Grammars, ","); got != "go,md=markdown.gfm" {
		t.Errorf("unexpected grammars %q", got)
	}
	if cfg.DuplicateRefs != config.DuplicateRefsFirst {
		t.Errorf("expected duplicate_refs first, got %q", cfg.DuplicateRefs)
	}
	if !config.Enabled(cfg.GuessUntagged) {
		t.Error("expected guess_untagged from project config")
	}
	if !config.Enabled(cfg.HeadingAnchors) {
		t.Error("unset flags keep their defaults")
	}
}

func TestLoad_ProjectConfigTOMLFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, "dllup.toml"), "grammars = [\"python\"]\nheading_anchors = false\n")
	subDir := filepath.Join(tmpDir, "posts", "2026")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(result.LoadedFrom) != 1 || filepath.Base(result.LoadedFrom[0]) != "dllup.toml" {
		t.Fatalf("expected dllup.toml to be loaded, got %v", result.LoadedFrom)
	}
	if config.Enabled(result.Config.HeadingAnchors) {
		t.Error("expected heading anchors disabled by TOML config")
	}
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".dllup.yml"), "duplicate_refs: first\ncolor: never\n")
	explicit := filepath.Join(tmpDir, "custom.yaml")
	writeFile(t, explicit, "color: always\n")

	opts := isolated(tmpDir)
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{Jobs: 3, Format: config.FormatJSON}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.DuplicateRefs != config.DuplicateRefsFirst {
		t.Errorf("project value lost: %q", cfg.DuplicateRefs)
	}
	if cfg.Color != config.ColorAlways {
		t.Errorf("explicit config should override project, got %q", cfg.Color)
	}
	if cfg.Jobs != 3 || cfg.Format != config.FormatJSON {
		t.Errorf("CLI config not applied: jobs=%d format=%q", cfg.Jobs, cfg.Format)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("expected two files loaded, got %v", result.LoadedFrom)
	}
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	t.Setenv("DLLUP_GRAMMARS", "go, rust")
	t.Setenv("DLLUP_GUESS_UNTAGGED", "1")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := strings.Join(result.Config.Grammars, ","); got != "go,rust" {
		t.Errorf("unexpected grammars %q", got)
	}
	if !config.Enabled(result.Config.GuessUntagged) {
		t.Error("expected DLLUP_GUESS_UNTAGGED to apply")
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	t.Setenv("DLLUP_JOBS", "many")

	opts := isolated(tmpDir)
	opts.IgnoreEnv = false

	if _, err := Load(context.Background(), opts); err == nil {
		t.Fatal("expected error for non-numeric DLLUP_JOBS")
	}
}

func TestLoad_ValidationError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".dllup.yml"), "grammars:\n  - \"two words\"\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "grammars[0]" {
		t.Errorf("unexpected field %q", validationErr.Field)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "HEAD"), "")
	writeFile(t, filepath.Join(tmpDir, ".dllup.toml"), "grammars = [\n")

	if _, err := Load(context.Background(), isolated(tmpDir)); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cfg       *config.Config
		wantError string
		warnings  int
	}{
		{name: "defaults", cfg: config.NewConfig()},
		{name: "bad policy", cfg: &config.Config{DuplicateRefs: "middle"}, wantError: "duplicate_refs"},
		{name: "bad color", cfg: &config.Config{Color: "sometimes"}, wantError: "color"},
		{name: "bad format", cfg: &config.Config{Format: "sarif"}, wantError: "format"},
		{name: "negative jobs", cfg: &config.Config{Jobs: -1}, wantError: "jobs"},
		{name: "bad extension", cfg: &config.Config{Extensions: []string{"dllu"}}, wantError: "extensions[0]"},
		{name: "bad glob", cfg: &config.Config{Ignore: []string{"[x"}}, wantError: "ignore[0]"},
		{name: "rebound tag", cfg: &config.Config{Grammars: []string{"go", "go=python"}}, warnings: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := Validate(tt.cfg)
			if tt.wantError == "" {
				if !result.Valid() {
					t.Fatalf("unexpected errors: %v", result.AllMessages())
				}
			} else if result.Valid() || result.Errors[0].Field != tt.wantError {
				t.Fatalf("expected error on %q, got %v", tt.wantError, result.AllMessages())
			}
			if len(result.Warnings) != tt.warnings {
				t.Errorf("expected %d warnings, got %v", tt.warnings, result.AllMessages())
			}
		})
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	override := &config.Config{GuessUntagged: config.Bool(true), Ignore: []string{"drafts/**"}}
	cli := &config.Config{Strict: true}

	merged := MergeAll(base, override, cli)
	if !config.Enabled(merged.GuessUntagged) || !merged.Strict {
		t.Errorf("flags not merged: %+v", merged)
	}
	if !config.Enabled(merged.HeadingAnchors) {
		t.Error("nil override must not clear base flag")
	}
	if len(merged.Ignore) != 1 {
		t.Errorf("ignore not replaced: %v", merged.Ignore)
	}
	if config.Enabled(base.GuessUntagged) {
		t.Error("base was mutated")
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	expanded, err := ExpandPath("~/dllup.toml")
	if err != nil {
		t.Fatalf("ExpandPath() error = %v", err)
	}
	if strings.HasPrefix(expanded, "~") || filepath.Base(expanded) != "dllup.toml" {
		t.Errorf("unexpected expansion %q", expanded)
	}

	plain, err := ExpandPath("relative/config.yaml")
	if err != nil || plain != "relative/config.yaml" {
		t.Errorf("plain paths are untouched, got %q, %v", plain, err)
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".dllup.yml")
	if err := WriteConfig(context.Background(), path, []byte("color: auto\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := WriteConfig(context.Background(), path, []byte("color: never\n"), false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if err := WriteConfig(context.Background(), path, []byte("color: never\n"), true); err != nil {
		t.Fatalf("forced WriteConfig() error = %v", err)
	}
}
