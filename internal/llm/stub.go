package llm

import (
	"context"
	"encoding/json"
)

// defaultStubPayload is a generic diagnosis served when no payload is
// configured. Its confidence is zero on purpose so downstream caching
// never keeps a canned answer.
var defaultStubPayload = json.RawMessage(`{
	"error_type": "generic_error",
	"voice_text": "I could not reach a diagnosis service, so here is some general troubleshooting advice.",
	"solutions": [
		"Read the full error message and note the exact error name",
		"Search for the first line of the traceback",
		"Check that your environment and dependencies are up to date"
	],
	"confidence": 0
}`)

// StubProvider answers every request with the same canned diagnosis
// payload. Unlike MockProvider it never exhausts, which makes it usable
// as an offline backend (ERRDOCTOR_LLM_PROVIDER=stub), not just in tests.
type StubProvider struct {
	payload json.RawMessage
}

// NewStubProvider creates a provider that always answers with payload.
// A nil payload selects the built-in generic diagnosis.
func NewStubProvider(payload json.RawMessage) *StubProvider {
	if payload == nil {
		payload = defaultStubPayload
	}
	return &StubProvider{payload: payload}
}

func (s *StubProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	return &Response{
		Content:    s.payload,
		Model:      "stub",
		StopReason: "end",
	}, nil
}

// ModelID returns "stub".
func (s *StubProvider) ModelID() string {
	return "stub"
}
