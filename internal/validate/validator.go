// Package validate gates error descriptions before they reach the
// resolution chain, rejecting text too vague to diagnose.
package validate

import (
	"strings"
	"unicode/utf8"
)

const (
	minLength                = 5
	minLengthWithoutKeywords = 15

	baseScore        = 0.3
	longTextBonus    = 0.15
	longTextChars    = 30
	mediumTextBonus  = 0.05
	mediumTextChars  = 15
)

// Result is the structured outcome of validating an error description.
// Validation never fails with an error; vague input produces Valid=false
// with a human-readable Rejection.
type Result struct {
	Valid     bool
	Rejection string
	Score     float64
}

// Validator checks that an error description is specific enough to be
// worth diagnosing, and scores how specific it is.
type Validator struct {
	detectors []Detector
}

// New creates a Validator with the default pattern families.
func New() *Validator {
	return &Validator{detectors: DefaultDetectors()}
}

// NewWithDetectors creates a Validator with a caller-supplied detector set.
func NewWithDetectors(detectors []Detector) *Validator {
	return &Validator{detectors: detectors}
}

// Validate applies the rejection rules in fixed order (first failure wins)
// and, when all pass, computes a specificity score in [0, 1]. It is a pure
// function of text.
func (v *Validator) Validate(text string) Result {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return Result{Rejection: "the error description is empty"}
	}
	if utf8.RuneCountInString(trimmed) < minLength {
		return Result{Rejection: "the error description is too short to diagnose"}
	}
	lower := strings.ToLower(trimmed)
	if vagueExact[lower] {
		return Result{Rejection: "the description is too vague; say the exact error message you see"}
	}
	if !containsSpecificKeyword(lower) && !reExceptionName.MatchString(trimmed) &&
		utf8.RuneCountInString(trimmed) < minLengthWithoutKeywords {
		return Result{Rejection: "the description is too generic; mention the error name or message"}
	}

	return Result{Valid: true, Score: v.score(trimmed)}
}

// score sums the weights of matching pattern families on top of the base
// score, adds a length bonus, and clamps to 1.0.
func (v *Validator) score(text string) float64 {
	score := baseScore
	for _, d := range v.detectors {
		if d.Matches(text) {
			score += d.Weight()
		}
	}
	n := utf8.RuneCountInString(text)
	if n > longTextChars {
		score += longTextBonus
	} else if n > mediumTextChars {
		score += mediumTextBonus
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func containsSpecificKeyword(lower string) bool {
	for _, kw := range specificKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// vagueExact holds descriptions rejected on exact (case-insensitive,
// trimmed) match. These carry zero diagnostic signal.
var vagueExact = map[string]bool{
	"error":            true,
	"an error":         true,
	"a bug":            true,
	"bug":              true,
	"it's broken":      true,
	"its broken":       true,
	"broken":           true,
	"it doesn't work":  true,
	"it doesnt work":   true,
	"doesn't work":     true,
	"not working":      true,
	"help":             true,
	"help me":          true,
	"my code":          true,
	"my program":       true,
	"a problem":        true,
	"something failed": true,
}

// specificKeywords are error names, phrases, and package names that mark a
// description as diagnosable even when short.
var specificKeywords = []string{
	"module not found", "modulenotfounderror", "importerror",
	"syntax error", "syntaxerror", "invalid syntax",
	"name error", "nameerror", "not defined",
	"attribute error", "attributeerror", "has no attribute",
	"type error", "typeerror", "wrong type",
	"value error", "valueerror",
	"key error", "keyerror",
	"index error", "indexerror", "out of range",
	"file not found", "filenotfounderror",
	"permission denied", "permissionerror",
	"indentation error", "indentationerror",
	"zero division", "zerodivisionerror",
	"recursion error", "recursionerror",
	"runtime error", "runtimeerror",
	"assertion error", "assertionerror",
	"keyboard interrupt", "keyboardinterrupt",
	"memory error", "memoryerror",
	"overflow error", "overflowerror",
	"unicode error", "unicodeerror",
	"os error", "oserror",
	"io error", "ioerror",
	"traceback",
	// Common packages users name when describing an error.
	"numpy", "pandas", "scipy", "matplotlib", "seaborn",
	"flask", "django", "fastapi", "requests", "sqlalchemy",
	"tensorflow", "keras", "pytorch", "scikit-learn", "sklearn",
	"opencv", "cv2", "pillow", "pil", "beautifulsoup", "bs4",
}
