package llm

import (
	"context"
	"encoding/json"
)

// Provider is one model backend capable of producing a diagnosis
// payload. The resolution chain holds an ordered list of these and
// tries them until one answers.
type Provider interface {
	// Generate sends the request to the backend and returns its output.
	// When the request carries a Schema, the backend is asked for JSON
	// conforming to it and the response Content is the validated object.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports which model this provider is configured to call.
	ModelID() string
}

// Request is a single generation request. Diagnosis requests are
// single-turn: one system prompt framing the assistant as an error
// diagnostician, one user message carrying the error text and profile.
type Request struct {
	// System frames the model's role and output constraints.
	System string

	// Messages is the conversation so far. For diagnosis this holds
	// exactly one user message.
	Messages []Message

	// Schema, when set, requests structured JSON output conforming to
	// it. When nil the raw model text is returned as-is.
	Schema *Schema

	// MaxTokens bounds the response length. Diagnosis payloads are
	// small; callers typically pass a few hundred tokens.
	MaxTokens int

	// Temperature in [0,1]. Zero (the default) keeps repeated
	// diagnoses of the same error stable.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON shape a response must take, e.g.
// the diagnosis payload with its error type, voice text, and solutions.
type Schema struct {
	// Name identifies the schema to the backend (tool name for
	// Anthropic, schema name for OpenAI). Kebab-case, e.g.
	// "error-diagnosis".
	Name string

	// Description tells the model what the shape represents.
	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Response is a backend's answer to one Request.
type Response struct {
	// Content is the model output. With a Schema in the request this
	// is the validated JSON object; without one it is raw text.
	Content json.RawMessage

	// Usage reports token consumption for the request.
	Usage Usage

	// Model is the model that actually served the request, which may
	// differ from the configured alias.
	Model string

	// StopReason is normalized to "end", "max_tokens", or "error".
	StopReason string
}

// Usage is the token count for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
