package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestMockProvider_ReplaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(diagnosisText),
			Usage:   Usage{InputTokens: 80, OutputTokens: 45, TotalTokens: 125},
		},
		MockResponse{Content: json.RawMessage(`{"error_type":"SyntaxError","voice_text":"Check line 3.","solutions":["Add the missing colon"]}`)},
	)

	resp1, err := mock.Generate(context.Background(), diagnoseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != diagnosisText {
		t.Fatalf("unexpected first payload: %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 80 {
		t.Fatalf("input tokens = %d, want 80", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), diagnoseRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		ErrorType string `json:"error_type"`
	}
	if err := json.Unmarshal(resp2.Content, &payload); err != nil {
		t.Fatalf("second payload not JSON: %v", err)
	}
	if payload.ErrorType != "SyntaxError" {
		t.Fatalf("second error_type = %q, want SyntaxError", payload.ErrorType)
	}
}

func TestMockProvider_ExhaustedScriptUnavailable(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), diagnoseRequest())
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T", err)
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})

	_, _ = mock.Generate(context.Background(), diagnoseRequest())

	if mock.CallCount() != 1 {
		t.Fatalf("call count = %d, want 1", mock.CallCount())
	}
	if got := mock.Calls[0].System; got != "You are a programming error diagnostician." {
		t.Fatalf("recorded system prompt = %q", got)
	}
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})

	_, err := mock.Generate(context.Background(), diagnoseRequest())
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T", err)
	}
}

func TestStubProvider_NeverExhausts(t *testing.T) {
	stub := NewStubProvider(nil)

	for range 3 {
		resp, err := stub.Generate(context.Background(), diagnoseRequest())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var payload struct {
			ErrorType  string   `json:"error_type"`
			Confidence *float64 `json:"confidence"`
			Solutions  []string `json:"solutions"`
		}
		if err := json.Unmarshal(resp.Content, &payload); err != nil {
			t.Fatalf("stub payload not JSON: %v", err)
		}
		if payload.ErrorType != "generic_error" {
			t.Errorf("error_type = %q, want generic_error", payload.ErrorType)
		}
		if payload.Confidence == nil || *payload.Confidence != 0 {
			t.Error("stub payload must carry an explicit zero confidence")
		}
		if len(payload.Solutions) == 0 {
			t.Error("stub payload has no solutions")
		}
	}
	if stub.ModelID() != "stub" {
		t.Errorf("model = %q, want stub", stub.ModelID())
	}
}

func TestNewProvider_StubBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "stub"

	p, err := NewProvider(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "stub" {
		t.Fatalf("model = %q, want stub", p.ModelID())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "error-diagnosis")
	if p := PurposeFrom(ctx); p != "error-diagnosis" {
		t.Fatalf("expected 'error-diagnosis', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"stub needs no key", Config{Provider: "stub"}, false},
		{"unknown provider", Config{Provider: "frobnicator"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
