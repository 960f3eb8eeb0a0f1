package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

// testDiagnosisSchema mirrors the shape providers are asked to fill:
// required identification fields plus optional metadata.
func testDiagnosisSchema() *Schema {
	return &Schema{
		Name:        "test-diagnosis",
		Description: "A structured error diagnosis",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"error_type": map[string]any{"type": "string"},
				"voice_text": map[string]any{"type": "string"},
				"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				"severity": map[string]any{
					"type": "string",
					"enum": []any{"low", "medium", "high"},
				},
				"solutions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"error_type", "voice_text", "solutions"},
		},
	}
}

func TestValidateResponse_AcceptsDiagnosis(t *testing.T) {
	raw := json.RawMessage(diagnosisText)
	if err := validateResponse(testDiagnosisSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_AcceptsOptionalMetadata(t *testing.T) {
	raw := json.RawMessage(`{"error_type":"KeyError","voice_text":"The key is missing.","solutions":["Check the key exists before indexing"],"confidence":0.7,"severity":"low"}`)
	if err := validateResponse(testDiagnosisSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_RejectsMissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"error_type":"KeyError"}`)
	err := validateResponse(testDiagnosisSchema(), raw)
	var bad *ErrInvalidResponse
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_RejectsWrongType(t *testing.T) {
	raw := json.RawMessage(`{"error_type":"KeyError","voice_text":"x","solutions":"pip install requests"}`)
	err := validateResponse(testDiagnosisSchema(), raw)
	var bad *ErrInvalidResponse
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_RejectsUnknownSeverity(t *testing.T) {
	raw := json.RawMessage(`{"error_type":"KeyError","voice_text":"x","solutions":["y"],"severity":"catastrophic"}`)
	err := validateResponse(testDiagnosisSchema(), raw)
	var bad *ErrInvalidResponse
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_RejectsOutOfRangeConfidence(t *testing.T) {
	raw := json.RawMessage(`{"error_type":"KeyError","voice_text":"x","solutions":["y"],"confidence":1.5}`)
	err := validateResponse(testDiagnosisSchema(), raw)
	var bad *ErrInvalidResponse
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_RejectsProse(t *testing.T) {
	raw := json.RawMessage(`It looks like a missing module. Try installing it.`)
	err := validateResponse(testDiagnosisSchema(), raw)
	var bad *ErrInvalidResponse
	if !errors.As(err, &bad) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestValidateResponse_RejectsEmpty(t *testing.T) {
	if err := validateResponse(testDiagnosisSchema(), json.RawMessage(``)); err == nil {
		t.Fatal("expected error for empty response")
	}
}

func TestValidateResponse_NilSchemaAcceptsAnything(t *testing.T) {
	raw := json.RawMessage(`whatever the model said`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
