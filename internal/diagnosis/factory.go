package diagnosis

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/errdoctor/internal/kb"
	"github.com/abhisek/errdoctor/internal/profile"
)

// maxVoiceLen caps spoken output. Longer answers move to the card text.
const maxVoiceLen = 300

// moduleNamePlaceholder substitutes {module} when the error text never
// names the missing package.
const moduleNamePlaceholder = "<package-name>"

// reModuleName captures the package name from import failures so
// solutions can say "pip install pandas" instead of a generic command.
var reModuleName = regexp.MustCompile(`(?i)no module named\s+['"]?([A-Za-z0-9_.\-]+)['"]?`)

// FromKBMatch builds a diagnosis from a knowledge-base match: solutions
// extracted for the caller's profile, personalized, and shaped into
// voice and card text.
func FromKBMatch(m *kb.Match, errorText string, p profile.Profile) *Diagnosis {
	t := m.Template
	solutions := kb.ExtractSolutions(t.Solutions, p)
	solutions = personalizeSolutions(solutions, errorText, p)

	d := &Diagnosis{
		ID:            uuid.NewString(),
		ErrorType:     t.ErrorType,
		Confidence:    m.Score,
		Source:        SourceKnowledgeBase,
		Solutions:     solutions,
		Explanation:   t.Explanation,
		CommonCauses:  t.CommonCauses,
		RelatedErrors: t.RelatedErrors,
		Category:      t.Category,
		Severity:      t.Severity,
		CreatedAt:     time.Now().UTC(),
	}
	d.VoiceText = buildVoiceText(d.ErrorType, d.Solutions)
	d.CardTitle = buildCardTitle(d.ErrorType)
	d.CardText = buildCardText(d)
	return d
}

// Generic returns the last-resort diagnosis used when validation passed
// but every resolution strategy failed. Its zero confidence and unknown
// source mark it as uncacheable.
func Generic(p profile.Profile) *Diagnosis {
	solutions := personalizeSolutions([]string{
		"Read the full error message; the last line usually names the problem",
		"Search for the exact error text together with the library name",
		"Check recent changes; the error often points at the line just after the real cause",
	}, "", p)

	d := &Diagnosis{
		ID:         uuid.NewString(),
		ErrorType:  GenericErrorType,
		Confidence: 0.0,
		Source:     SourceUnknown,
		Solutions:  solutions,
		CreatedAt:  time.Now().UTC(),
	}
	d.VoiceText = "I could not pin down the exact error. " +
		"Read the full message carefully; the last line usually names the problem."
	d.CardTitle = "Unrecognized error"
	d.CardText = buildCardText(d)
	return d
}

// personalizeSolutions substitutes the {os}, {pm}, {editor} and {module}
// placeholders in each solution with the caller's actual context.
func personalizeSolutions(solutions []string, errorText string, p profile.Profile) []string {
	if len(solutions) == 0 {
		return solutions
	}

	module := moduleNamePlaceholder
	if m := reModuleName.FindStringSubmatch(errorText); m != nil {
		module = m[1]
	}

	r := strings.NewReplacer(
		"{os}", string(p.OS),
		"{pm}", string(p.PackageManager),
		"{editor}", string(p.Editor),
		"{module}", module,
	)

	out := make([]string, len(solutions))
	for i, s := range solutions {
		out[i] = r.Replace(s)
	}
	return out
}

// buildVoiceText composes the spoken answer: the error type, the first
// solution, and how many more are available, capped at maxVoiceLen.
func buildVoiceText(errorType string, solutions []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I detected a %s.", errorType)
	if len(solutions) > 0 {
		fmt.Fprintf(&b, " Try this: %s.", strings.TrimRight(solutions[0], "."))
	}
	if extra := len(solutions) - 1; extra > 0 {
		fmt.Fprintf(&b, " I have %d more suggestions.", extra)
	}
	return truncate(b.String(), maxVoiceLen)
}

func buildCardTitle(errorType string) string {
	return "Diagnosis: " + errorType
}

// buildCardText renders the full written answer: every solution plus the
// explanation, with no length cap.
func buildCardText(d *Diagnosis) string {
	var b strings.Builder
	for i, s := range d.Solutions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	if d.Explanation != "" {
		b.WriteString("\n")
		b.WriteString(d.Explanation)
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := string(runes[:max-3])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
