package diagnosis

import "github.com/abhisek/errdoctor/internal/llm"

// Schema defines the JSON structure expected from AI providers when
// generating a diagnosis.
var Schema = &llm.Schema{
	Name:        "error-diagnosis",
	Description: "Structured diagnosis of a programming error description",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error_type": map[string]any{
				"type":        "string",
				"description": "Canonical error class, e.g. ModuleNotFoundError, or a short descriptive label for non-Python errors",
			},
			"voice_text": map[string]any{
				"type":        "string",
				"description": "One or two short spoken sentences: the error class and the single best first step",
			},
			"solutions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Concrete steps in priority order, each a single imperative sentence",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Brief explanation of what causes this error",
			},
			"common_causes": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Typical situations that produce this error",
			},
			"related_errors": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Error classes commonly confused with this one",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "How confident the diagnosis is, 0.0-1.0",
			},
		},
		"required":             []any{"error_type", "voice_text", "solutions"},
		"additionalProperties": false,
	},
}
