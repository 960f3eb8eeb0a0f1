// Package diagnosis defines the diagnosis model and the two producers
// that build one: the knowledge-base factory and the AI generator.
package diagnosis

import "time"

// Source tags where a diagnosis came from. Cached diagnoses keep the
// source they were created with.
const (
	SourceKnowledgeBase = "knowledge-base"
	SourceAI            = "ai"
	SourceUnknown       = "unknown"
)

// GenericErrorType is the error type of the last-resort fallback
// diagnosis produced when every other strategy fails.
const GenericErrorType = "generic_error"

// Diagnosis is the engine's answer for one error description: a
// classified error type with ranked, profile-personalized solutions and
// the presentation text derived from them.
type Diagnosis struct {
	ID         string  `json:"id"`
	ErrorType  string  `json:"error_type"`
	Confidence float64 `json:"confidence"`
	Source     string  `json:"source"`

	Solutions     []string `json:"solutions"`
	Explanation   string   `json:"explanation,omitempty"`
	CommonCauses  []string `json:"common_causes,omitempty"`
	RelatedErrors []string `json:"related_errors,omitempty"`
	Category      string   `json:"category,omitempty"`
	Severity      string   `json:"severity,omitempty"`

	VoiceText string `json:"voice_text"`
	CardTitle string `json:"card_title"`
	CardText  string `json:"card_text"`

	CreatedAt time.Time `json:"created_at"`
}

// Resolution wraps a diagnosis with how the engine obtained it, for
// callers that report strategy provenance.
type Resolution struct {
	Diagnosis *Diagnosis
	Strategy  string
	FromCache bool
}
