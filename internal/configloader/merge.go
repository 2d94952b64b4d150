package configloader

import "github.com/yaklabco/dllup/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Optional flags: override overwrites base if override is non-nil
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.DuplicateRefs != "" {
		result.DuplicateRefs = override.DuplicateRefs
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Strict can only be switched on, from the CLI.
	if override.Strict {
		result.Strict = true
	}

	if override.GuessUntagged != nil {
		result.GuessUntagged = override.GuessUntagged
	}
	if override.HeadingAnchors != nil {
		result.HeadingAnchors = override.HeadingAnchors
	}

	if override.Grammars != nil {
		result.Grammars = override.Grammars
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
