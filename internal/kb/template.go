// Package kb implements the local knowledge base: curated error templates,
// the confidence-scored matcher, and profile-aware solution extraction.
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
)

// Template is a curated knowledge-base entry mapping a canonical error
// type to detection patterns and solution data. Templates are loaded once
// and read-only thereafter.
type Template struct {
	ID              string   `json:"id"`
	ErrorType       string   `json:"error_type"`
	Patterns        []string `json:"patterns"`
	Keywords        []string `json:"keywords"`
	ConfidenceBoost float64  `json:"confidence_boost"`

	// Solutions is deliberately untyped. Hand-authored entries use one of
	// three shapes: nested (OS → package manager → list), flat (OS → list),
	// or a plain list. ExtractSolutions absorbs the inconsistency.
	Solutions any `json:"solutions"`

	Explanation   string   `json:"explanation,omitempty"`
	CommonCauses  []string `json:"common_causes,omitempty"`
	RelatedErrors []string `json:"related_errors,omitempty"`
	Category      string   `json:"category,omitempty"`
	Severity      string   `json:"severity,omitempty"`
}

// Collection is a versioned set of templates. Template order is
// significant: it is the matcher's tie-break.
type Collection struct {
	Version   string     `json:"version"`
	Templates []Template `json:"errors"`
}

// Empty returns a collection with no templates. The matcher never accepts
// against it, so the engine falls through to cache and AI.
func Empty() *Collection {
	return &Collection{Version: "empty"}
}

// Load reads a template collection from a JSON document at path. A missing
// or malformed file degrades to the empty collection rather than failing:
// the engine must keep working without a knowledge base.
func Load(path string, log *zap.Logger) *Collection {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("knowledge base file unavailable, using empty collection",
			zap.String("path", path), zap.Error(err))
		return Empty()
	}
	col, err := Parse(data)
	if err != nil {
		log.Warn("knowledge base file malformed, using empty collection",
			zap.String("path", path), zap.Error(err))
		return Empty()
	}
	log.Info("knowledge base loaded",
		zap.String("version", col.Version), zap.Int("templates", len(col.Templates)))
	return col
}

// Parse decodes a collection from raw JSON and checks template IDs are
// unique within it.
func Parse(data []byte) (*Collection, error) {
	var col Collection
	if err := json.Unmarshal(data, &col); err != nil {
		return nil, fmt.Errorf("decode template collection: %w", err)
	}
	seen := make(map[string]bool, len(col.Templates))
	for _, t := range col.Templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template with empty id")
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return &col, nil
}

// ByID returns the template with the given identifier, or nil.
func (c *Collection) ByID(id string) *Template {
	for i := range c.Templates {
		if c.Templates[i].ID == id {
			return &c.Templates[i]
		}
	}
	return nil
}

// Stats summarizes the collection for inspection commands.
type Stats struct {
	Version    string
	Templates  int
	Categories []string
	Severities []string
}

// Statistics computes summary information about the collection.
func (c *Collection) Statistics() Stats {
	cats := make(map[string]bool)
	sevs := make(map[string]bool)
	for _, t := range c.Templates {
		if t.Category != "" {
			cats[t.Category] = true
		}
		if t.Severity != "" {
			sevs[t.Severity] = true
		}
	}
	return Stats{
		Version:    c.Version,
		Templates:  len(c.Templates),
		Categories: sortedKeys(cats),
		Severities: sortedKeys(sevs),
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
