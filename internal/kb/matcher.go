package kb

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	errorTypeScore   = 0.8
	patternScoreCap  = 1.0
	patternScoreMult = 1.4
	keywordScoreCap  = 0.4
	keywordScoreMult = 0.4 * 4
)

// MatcherConfig tunes the matcher's own acceptance floor. This is the
// "worth returning" bar; the resolution chain applies its stricter
// "trust this over AI" threshold separately.
type MatcherConfig struct {
	MinScore float64
}

// DefaultMatcherConfig returns the empirically tuned defaults.
func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{MinScore: 0.25}
}

// Match is a template selected by the matcher together with its computed
// confidence score.
type Match struct {
	Template *Template
	Score    float64
}

// Matcher scores error text against every template in a collection and
// returns the best match above the floor. It is deterministic: template
// order in the collection is the tie-break.
type Matcher struct {
	col      *Collection
	cfg      MatcherConfig
	log      *zap.Logger
	compiled [][]*regexp.Regexp // per template, nil entries for malformed patterns
}

// NewMatcher compiles the collection's patterns once. Malformed regular
// expressions are skipped with a warning, never aborting construction.
func NewMatcher(col *Collection, cfg MatcherConfig, log *zap.Logger) *Matcher {
	compiled := make([][]*regexp.Regexp, len(col.Templates))
	for i, t := range col.Templates {
		compiled[i] = make([]*regexp.Regexp, len(t.Patterns))
		for j, p := range t.Patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				log.Warn("skipping malformed knowledge base pattern",
					zap.String("template", t.ID), zap.String("pattern", p), zap.Error(err))
				continue
			}
			compiled[i][j] = re
		}
	}
	return &Matcher{col: col, cfg: cfg, log: log, compiled: compiled}
}

// Match returns the best-scoring template for errorText, or nil when no
// template reaches the floor. The strictly highest score wins; ties keep
// the first-encountered template.
func (m *Matcher) Match(errorText string) *Match {
	if errorText == "" || len(m.col.Templates) == 0 {
		return nil
	}

	lower := strings.ToLower(errorText)
	var best *Match
	for i := range m.col.Templates {
		score := m.score(i, lower)
		if best == nil || score > best.Score {
			best = &Match{Template: &m.col.Templates[i], Score: score}
		}
	}

	if best == nil || best.Score < m.cfg.MinScore {
		return nil
	}
	m.log.Debug("knowledge base match",
		zap.String("template", best.Template.ID), zap.Float64("score", best.Score))
	return best
}

// score computes the confidence of template i against the lowercased text:
// error-type presence, regex pattern hits, keyword hits, and the template's
// static boost, clamped to 1.0.
func (m *Matcher) score(i int, lower string) float64 {
	t := &m.col.Templates[i]
	score := 0.0

	if errorTypeHit(t.ErrorType, lower) {
		score += errorTypeScore
	}

	if n := len(t.Patterns); n > 0 {
		hits := 0
		for _, re := range m.compiled[i] {
			if re != nil && re.MatchString(lower) {
				hits++
			}
		}
		if hits > 0 {
			contrib := float64(hits) / float64(n) * patternScoreMult
			if contrib > patternScoreCap {
				contrib = patternScoreCap
			}
			score += contrib
		}
	}

	if k := len(t.Keywords); k > 0 {
		hits := 0
		for _, kw := range t.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				hits++
			}
		}
		if hits > 0 {
			contrib := float64(hits) / float64(k) * keywordScoreMult
			if contrib > keywordScoreCap {
				contrib = keywordScoreCap
			}
			score += contrib
		}
	}

	score += t.ConfidenceBoost
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// errorTypeHit reports whether the template's canonical error type occurs
// in the text: literally, with spaces/underscores stripped, or as its stem
// with the word "error" removed.
func errorTypeHit(errorType, lower string) bool {
	if errorType == "" {
		return false
	}
	typeLower := strings.ToLower(errorType)
	if strings.Contains(lower, typeLower) {
		return true
	}
	if strings.Contains(squash(lower), squash(typeLower)) {
		return true
	}
	stem := strings.TrimSpace(strings.ReplaceAll(typeLower, "error", ""))
	stem = strings.Trim(stem, "_ ")
	return stem != "" && strings.Contains(lower, stem)
}

// squash removes spaces and underscores so "module not found" matches
// "modulenotfound" and "py_module_not_found".
func squash(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}
