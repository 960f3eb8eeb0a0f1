package kb

import (
	"sort"

	"github.com/abhisek/errdoctor/internal/profile"
)

// ExtractorConfig controls the fallback order when the requested OS or
// package manager has no entry in the solution data. The default mirrors
// the knowledge base's authoring convention: linux is the canonical OS.
type ExtractorConfig struct {
	FallbackOS string
}

// DefaultExtractorConfig returns the canonical fallback settings.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{FallbackOS: string(profile.OSLinux)}
}

// ExtractSolutions flattens a template's solution data into the list
// matching the caller's profile, using the default fallback configuration.
func ExtractSolutions(data any, p profile.Profile) []string {
	return ExtractSolutionsWithConfig(data, p, DefaultExtractorConfig())
}

// ExtractSolutionsWithConfig tries the three authored shapes in fixed
// priority order, detected structurally rather than by a type tag:
//
//  1. nested: OS → package manager → list
//  2. flat: OS → list
//  3. plain list, returned verbatim
//
// Anything else yields an empty list. The function never panics on
// malformed data; absorbing the knowledge base's inconsistency is its job.
func ExtractSolutionsWithConfig(data any, p profile.Profile, cfg ExtractorConfig) []string {
	switch v := data.(type) {
	case map[string]any:
		if hasMapValue(v) {
			return extractNested(v, p, cfg)
		}
		if hasListValue(v) {
			return extractFlat(v, p, cfg)
		}
		return nil
	case []any:
		return toStrings(v)
	case []string:
		return v
	default:
		return nil
	}
}

// extractNested resolves solutions[os][pm], falling back to any other
// package manager under the same OS, then to the fallback OS with the
// same two-step lookup.
func extractNested(data map[string]any, p profile.Profile, cfg ExtractorConfig) []string {
	if s := lookupNestedOS(data[string(p.OS)], p); len(s) > 0 {
		return s
	}
	if s := lookupNestedOS(data[cfg.FallbackOS], p); len(s) > 0 {
		return s
	}
	return nil
}

// lookupNestedOS resolves the package-manager level under one OS entry.
// Mixed-shape entries where the OS maps straight to a list are tolerated.
func lookupNestedOS(osEntry any, p profile.Profile) []string {
	switch e := osEntry.(type) {
	case map[string]any:
		if s := toStrings(asList(e[string(p.PackageManager)])); len(s) > 0 {
			return s
		}
		return firstListValue(e)
	case []any:
		return toStrings(e)
	default:
		return nil
	}
}

// extractFlat resolves solutions[os], falling back to the fallback OS and
// then to the first available entry.
func extractFlat(data map[string]any, p profile.Profile, cfg ExtractorConfig) []string {
	if s := toStrings(asList(data[string(p.OS)])); len(s) > 0 {
		return s
	}
	if s := toStrings(asList(data[cfg.FallbackOS])); len(s) > 0 {
		return s
	}
	return firstListValue(data)
}

// firstListValue returns the first list-shaped value by sorted key, so
// extraction stays deterministic across runs.
func firstListValue(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := toStrings(asList(m[k])); len(s) > 0 {
			return s
		}
	}
	return nil
}

func hasMapValue(m map[string]any) bool {
	for _, v := range m {
		if _, ok := v.(map[string]any); ok {
			return true
		}
	}
	return false
}

func hasListValue(m map[string]any) bool {
	for _, v := range m {
		switch v.(type) {
		case []any, []string:
			return true
		}
	}
	return false
}

func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}

func toStrings(list []any) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
