package skills

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-fit/internal/llm"
)

// maxRecognizerInput bounds the text sent to the model.
const maxRecognizerInput = 20000

// LLMRecognizer asks a language model to tag named entities.
type LLMRecognizer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMRecognizer returns a recognizer backed by client using the lite model tier.
func NewLLMRecognizer(client llm.Client) *LLMRecognizer {
	return &LLMRecognizer{client: client, tier: llm.TierLite}
}

// Name implements EntityRecognizer.
func (r *LLMRecognizer) Name() string { return "llm" }

// Recognize implements EntityRecognizer.
func (r *LLMRecognizer) Recognize(ctx context.Context, text string) ([]Entity, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if runes := []rune(text); len(runes) > maxRecognizerInput {
		text = string(runes[:maxRecognizerInput])
	}

	prompt := llm.BuildExtractionPrompt(llm.NamedEntitySchema(), text)
	response, err := r.client.GenerateJSON(ctx, prompt, r.tier)
	if err != nil {
		return nil, &RecognizerError{Recognizer: r.Name(), Cause: err}
	}

	return parseEntityResponse(response)
}

// parseEntityResponse accepts either {"entities": [...]} or a bare array.
func parseEntityResponse(response string) ([]Entity, error) {
	cleaned := llm.CleanJSONBlock(response)
	if cleaned == "" {
		return nil, &ResponseError{Shape: "empty response"}
	}

	var raw []Entity
	if strings.HasPrefix(cleaned, "[") {
		if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
			return nil, &ResponseError{Shape: "entity array", Cause: err}
		}
	} else {
		var wrapped struct {
			Entities []Entity `json:"entities"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
			return nil, &ResponseError{Shape: "entity object", Cause: err}
		}
		raw = wrapped.Entities
	}

	entities := make([]Entity, 0, len(raw))
	for _, e := range raw {
		e.Text = strings.TrimSpace(e.Text)
		e.Label = strings.ToUpper(strings.TrimSpace(e.Label))
		if e.Text == "" {
			continue
		}
		entities = append(entities, e)
	}
	return entities, nil
}
