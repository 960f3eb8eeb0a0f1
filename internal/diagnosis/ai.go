package diagnosis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/errdoctor/internal/llm"
	"github.com/abhisek/errdoctor/internal/profile"
)

// GeneratorConfig holds configuration for the AI diagnosis generator.
type GeneratorConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGeneratorConfig returns sensible defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:   512,
		Temperature: 0.3,
	}
}

// Generator produces diagnoses from a chain of AI providers. Providers
// are tried in order; each failure is logged and the next provider takes
// over. A nil result means the whole chain failed.
type Generator struct {
	providers []llm.Provider
	cfg       GeneratorConfig
	log       *zap.Logger
}

// NewGenerator creates a generator over the given provider chain. An
// empty chain is valid: Generate then always returns nil.
func NewGenerator(providers []llm.Provider, cfg GeneratorConfig, log *zap.Logger) *Generator {
	return &Generator{providers: providers, cfg: cfg, log: log}
}

// aiPayload is the raw provider response. Confidence is a pointer so an
// explicit 0.0 from the provider survives; absence defaults later.
type aiPayload struct {
	ErrorType     string   `json:"error_type"`
	VoiceText     string   `json:"voice_text"`
	Solutions     []string `json:"solutions"`
	Explanation   string   `json:"explanation"`
	CommonCauses  []string `json:"common_causes"`
	RelatedErrors []string `json:"related_errors"`
	Confidence    *float64 `json:"confidence"`
}

// Generate asks the provider chain to diagnose errorText. It returns nil
// when no provider produces a usable diagnosis; the caller decides the
// fallback.
func (g *Generator) Generate(ctx context.Context, errorText string, p profile.Profile) *Diagnosis {
	if len(g.providers) == 0 {
		return nil
	}
	ctx = llm.WithPurpose(ctx, "error-diagnosis")

	userMsg, err := buildDiagnosisMessage(errorText, p)
	if err != nil {
		g.log.Error("build diagnosis prompt", zap.Error(err))
		return nil
	}

	req := llm.Request{
		System: diagnosisSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	for _, prov := range g.providers {
		resp, err := prov.Generate(ctx, req)
		if err != nil {
			var invalid *llm.ErrInvalidResponse
			if errors.As(err, &invalid) {
				g.log.Warn("ai provider returned unusable diagnosis",
					zap.String("provider", prov.ModelID()), zap.Error(err))
			} else {
				g.log.Warn("ai provider failed",
					zap.String("provider", prov.ModelID()), zap.Error(err))
			}
			continue
		}

		payload, err := parsePayload(resp.Content)
		if err != nil {
			g.log.Warn("ai provider returned unusable diagnosis",
				zap.String("provider", prov.ModelID()), zap.Error(err))
			continue
		}

		g.log.Info("ai diagnosis generated",
			zap.String("provider", prov.ModelID()), zap.String("error_type", payload.ErrorType))
		return fromPayload(payload, errorText, p)
	}

	return nil
}

// parsePayload extracts the diagnosis object from raw provider output.
// Providers without native structured output sometimes wrap the JSON in
// prose, so everything outside the outermost braces is discarded.
func parsePayload(content json.RawMessage) (*aiPayload, error) {
	body, err := extractJSONObject(string(content))
	if err != nil {
		return nil, err
	}

	var payload aiPayload
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: content, Err: err}
	}

	switch {
	case payload.ErrorType == "":
		err = errors.New("missing error_type")
	case payload.VoiceText == "":
		err = errors.New("missing voice_text")
	case len(payload.Solutions) == 0:
		err = errors.New("missing solutions")
	}
	if err != nil {
		return nil, &llm.ErrInvalidResponse{Content: content, Err: err}
	}
	return &payload, nil
}

// extractJSONObject returns the substring from the first '{' through the
// last '}' of s.
func extractJSONObject(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", &llm.ErrInvalidResponse{
			Content: json.RawMessage(s), Err: errors.New("no JSON object in response"),
		}
	}
	return s[start : end+1], nil
}

// fromPayload builds the diagnosis from a validated provider payload.
// Confidence defaults to 0.8 only when the provider omitted the field.
func fromPayload(payload *aiPayload, errorText string, p profile.Profile) *Diagnosis {
	confidence := 0.8
	if payload.Confidence != nil {
		confidence = *payload.Confidence
	}

	d := &Diagnosis{
		ID:            uuid.NewString(),
		ErrorType:     payload.ErrorType,
		Confidence:    confidence,
		Source:        SourceAI,
		Solutions:     personalizeSolutions(payload.Solutions, errorText, p),
		Explanation:   payload.Explanation,
		CommonCauses:  payload.CommonCauses,
		RelatedErrors: payload.RelatedErrors,
		CreatedAt:     time.Now().UTC(),
	}
	d.VoiceText = truncate(payload.VoiceText, maxVoiceLen)
	d.CardTitle = buildCardTitle(d.ErrorType)
	d.CardText = buildCardText(d)
	return d
}

const diagnosisSystemPrompt = `You are an expert programming-error diagnostician. A developer describes an error in free text. Classify it and propose concrete fixes.

Instructions:
- Name the canonical error class when one fits (e.g. ModuleNotFoundError, SyntaxError). Otherwise use a short descriptive label.
- Tailor solutions to the developer's operating system and package manager.
- Each solution is one imperative sentence, most likely fix first.
- voice_text is one or two short spoken sentences: the error class and the single best first step.
- Provide a confidence score (0.0-1.0). Be honest: vague descriptions deserve low confidence.`

var diagnosisUserTemplate = template.Must(template.New("diagnosis").Parse(`Error description: {{.ErrorText}}

Developer context:
- Operating system: {{.OS}}
- Package manager: {{.PackageManager}}
- Editor: {{.Editor}}`))

func buildDiagnosisMessage(errorText string, p profile.Profile) (string, error) {
	var buf bytes.Buffer
	data := struct {
		ErrorText      string
		OS             profile.OS
		PackageManager profile.PackageManager
		Editor         profile.Editor
	}{errorText, p.OS, p.PackageManager, p.Editor}

	if err := diagnosisUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
