package validate

import "regexp"

// Detector is a single pattern family used for specificity scoring.
// Detectors are independent and additive: only the sum of matching
// weights contributes to a score, never their order. New detectors are
// appended to DefaultDetectors without touching existing ones.
type Detector struct {
	name   string
	re     *regexp.Regexp
	weight float64
}

// Matches reports whether the detector's pattern occurs in text.
func (d Detector) Matches(text string) bool {
	return d.re.MatchString(text)
}

// Weight returns the detector's contribution to the specificity score.
func (d Detector) Weight() float64 {
	return d.weight
}

// Name returns the detector's identifier.
func (d Detector) Name() string {
	return d.name
}

// DefaultDetectors returns the built-in pattern families. The slice is
// freshly allocated so callers can append their own detectors.
func DefaultDetectors() []Detector {
	return []Detector{
		{name: "exception-name", re: reExceptionName, weight: 0.8},
		{name: "not-found", re: reNotFound, weight: 0.5},
		{name: "cannot-verb", re: reCannotVerb, weight: 0.4},
		{name: "import-module", re: reImportModule, weight: 0.5},
		{name: "syntax-error", re: reSyntaxError, weight: 0.6},
		{name: "attribute-undefined", re: reAttribute, weight: 0.5},
		{name: "technical-notation", re: reTechnicalNotation, weight: 0.3},
		{name: "traceback-line", re: reTraceback, weight: 0.4},
	}
}

var (
	// CamelCase exception names: NameError, ModuleNotFoundError, QuuxError.
	reExceptionName = regexp.MustCompile(`\b[A-Z][a-z]+(?:[A-Z][a-z]+)*(?:Error|Exception|Warning|Interrupt)\b`)

	reNotFound   = regexp.MustCompile(`(?i)\b(?:not|no)\s+(?:found|module|such|defined)\b`)
	reCannotVerb = regexp.MustCompile(`(?i)\b(?:cannot|can't|could\s+not|unable\s+to)\s+\w+`)

	reImportModule = regexp.MustCompile(`(?i)\b(?:import|module|package|library)\b`)
	reSyntaxError  = regexp.MustCompile(`(?i)\b(?:syntax|invalid\s+syntax|unexpected\s+(?:token|indent|eof)|parse\s+error)\b`)
	reAttribute    = regexp.MustCompile(`(?i)\b(?:attribute|has\s+no|is\s+not\s+defined|undefined)\b`)

	// Dotted or snake_case identifiers: pandas.DataFrame, my_module_name.
	reTechnicalNotation = regexp.MustCompile(`\b\w+(?:\.\w+|_\w+)+\b`)

	reTraceback = regexp.MustCompile(`(?i)\b(?:traceback|stack\s*trace|(?:at\s+|on\s+)?line\s+\d+)\b`)
)
