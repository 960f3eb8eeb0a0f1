package llm

import (
	"testing"
)

func TestGeminiModelAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // exact IDs pass through
	}
	for _, tt := range tests {
		if got := resolveModel(tt.alias, geminiModels); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.alias, got, tt.want)
		}
	}
}

func TestGenaiSchema_DiagnosisShape(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"error_type": map[string]any{"type": "string"},
			"voice_text": map[string]any{"type": "string"},
			"confidence": map[string]any{"type": "number"},
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
	}

	schema := genaiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("type = %s, want OBJECT", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("properties = %d, want 5", len(schema.Properties))
	}
	if schema.Properties["error_type"].Type != "STRING" {
		t.Errorf("error_type type = %s, want STRING", schema.Properties["error_type"].Type)
	}
	if schema.Properties["confidence"].Type != "NUMBER" {
		t.Errorf("confidence type = %s, want NUMBER", schema.Properties["confidence"].Type)
	}
	if len(schema.Properties["severity"].Enum) != 3 {
		t.Errorf("severity enum = %d values, want 3", len(schema.Properties["severity"].Enum))
	}
	if schema.Properties["solutions"].Type != "ARRAY" {
		t.Errorf("solutions type = %s, want ARRAY", schema.Properties["solutions"].Type)
	}
	if schema.Properties["solutions"].Items.Type != "STRING" {
		t.Errorf("solutions items type = %s, want STRING", schema.Properties["solutions"].Items.Type)
	}
	if len(schema.Required) != 3 {
		t.Errorf("required = %d fields, want 3", len(schema.Required))
	}
}
