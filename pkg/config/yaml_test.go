package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/dllup/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Parallel()

	t.Run("nil config returns nil", func(t *testing.T) {
		t.Parallel()

		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("deep copies slices and flags", func(t *testing.T) {
		t.Parallel()

		original := &config.Config{
			Grammars:       []string{"go"},
			Ignore:         []string{"drafts/**"},
			HeadingAnchors: config.Bool(true),
			Jobs:           4,
			Format:         config.FormatJSON,
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, original, clone)
		assert.Equal(t, original, clone)

		clone.Grammars[0] = "python"
		clone.Ignore = append(clone.Ignore, "x")
		*clone.HeadingAnchors = false

		assert.Equal(t, []string{"go"}, original.Grammars)
		assert.Equal(t, []string{"drafts/**"}, original.Ignore)
		assert.True(t, *original.HeadingAnchors)
	})
}

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	original := config.NewConfig()
	original.Grammars = []string{"go", "md=markdown.gfm"}
	original.Format = config.FormatJSON

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "duplicate_refs: last")
	assert.NotContains(t, string(data), "format", "CLI-only fields are not persisted")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, original.Grammars, parsed.Grammars)
	assert.Equal(t, original.DuplicateRefs, parsed.DuplicateRefs)
	assert.Equal(t, original.HeadingAnchors, parsed.HeadingAnchors)
	assert.Equal(t, original.Extensions, parsed.Extensions)
}

func TestConfig_TOML(t *testing.T) {
	t.Parallel()

	parsed, err := config.FromTOML([]byte(`
grammars = ["go", "py=python"]
duplicate_refs = "first"
guess_untagged = true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "py=python"}, parsed.Grammars)
	assert.Equal(t, config.DuplicateRefsFirst, parsed.DuplicateRefs)
	assert.True(t, config.Enabled(parsed.GuessUntagged))
	assert.Nil(t, parsed.HeadingAnchors)

	_, err = config.FromTOML([]byte("unknown_key = 1\n"))
	require.Error(t, err)

	data, err := parsed.ToTOML()
	require.NoError(t, err)
	again, err := config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, parsed.Grammars, again.Grammars)
	assert.Equal(t, parsed.DuplicateRefs, again.DuplicateRefs)
}

func TestOutputFormat_IsValid(t *testing.T) {
	t.Parallel()

	for _, format := range config.Formats() {
		assert.True(t, format.IsValid(), string(format))
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("yaml parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full:     true,
			Format:   config.TemplateYAML,
			Grammars: []string{"go", "md=markdown.gfm"},
		})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "md=markdown.gfm"}, cfg.Grammars)
		assert.True(t, config.Enabled(cfg.HeadingAnchors))
	})

	t.Run("toml parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{
			Full:     true,
			Format:   config.TemplateTOML,
			Grammars: []string{"go"},
		})
		require.NoError(t, err)

		cfg, err := config.FromTOML(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"go"}, cfg.Grammars)
		assert.Equal(t, config.ColorAuto, cfg.Color)
	})

	t.Run("minimal has no grammars", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Empty(t, cfg.Grammars)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := config.GenerateTemplate(config.TemplateOptions{Format: "ini"})
		require.Error(t, err)
	})
}
