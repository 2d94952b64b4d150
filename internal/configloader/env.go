package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yaklabco/dllup/pkg/config"
)

// envVarPrefix is the prefix for all dllup environment variables.
const envVarPrefix = "DLLUP_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"GRAMMARS":        {field: "grammars", typ: envTypeSlice},
	"DUPLICATE_REFS":  {field: "duplicate_refs", typ: envTypeString},
	"GUESS_UNTAGGED":  {field: "guess_untagged", typ: envTypeBool},
	"HEADING_ANCHORS": {field: "heading_anchors", typ: envTypeBool},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice},
	"IGNORE":          {field: "ignore", typ: envTypeSlice},
	"COLOR":           {field: "color", typ: envTypeString},
	"FORMAT":          {field: "format", typ: envTypeString},
	"JOBS":            {field: "jobs", typ: envTypeInt},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with DLLUP_ (e.g., DLLUP_GRAMMARS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "duplicate_refs":
		cfg.DuplicateRefs = value
	case "color":
		cfg.Color = config.ColorMode(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "guess_untagged":
		cfg.GuessUntagged = config.Bool(value)
	case "heading_anchors":
		cfg.HeadingAnchors = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "grammars":
		cfg.Grammars = value
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ListEnvVars returns a list of all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	return map[string]string{
		"DLLUP_GRAMMARS":        "Comma-separated sub-grammar binding specs",
		"DLLUP_DUPLICATE_REFS":  "Duplicate reference policy: last or first",
		"DLLUP_GUESS_UNTAGGED":  "Guess languages of untagged fences: true or false",
		"DLLUP_HEADING_ANCHORS": "Compute heading anchors: true or false",
		"DLLUP_EXTENSIONS":      "Comma-separated dllup file extensions",
		"DLLUP_IGNORE":          "Comma-separated list of ignore patterns",
		"DLLUP_COLOR":           "Styled output: auto, always, or never",
		"DLLUP_FORMAT":          "Output format: text, tree, table, json, or summary",
		"DLLUP_JOBS":            "Number of parallel workers (0 = auto)",
	}
}
