package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"NPSLabeler/internal/labeling"
	"NPSLabeler/internal/ports"
)

const defaultModel = "gpt-4o-mini"

// OpenAIClient scores the taxonomy with a chat model. It is the fallback
// backend for environments without a dedicated zero-shot inference service;
// scores come back as a JSON object keyed by the exact candidate phrases.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

var _ ports.Classifier = (*OpenAIClient)(nil)

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Classify asks the model for one confidence per candidate label.
func (c *OpenAIClient) Classify(ctx context.Context, text string, labels []labeling.Label) (labeling.Scores, error) {
	resp, err := c.client.CreateChatCompletion(ctx, scoringRequest(c.model, text, labels))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return parseScoreObject(labels, resp.Choices[0].Message.Content)
}

// scoringRequest builds the chat request for one response. The temperature
// field is tagged omitempty in the client, so a literal 0 never reaches the
// API and the service falls back to its default of 1; the smallest positive
// float32 survives marshaling and scores deterministically.
func scoringRequest(model, text string, labels []labeling.Label) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:       model,
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: scoringPrompt(labels),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	}
}

func scoringPrompt(labels []labeling.Label) string {
	var b strings.Builder
	b.WriteString("You score health-plan survey responses. For each candidate label, ")
	b.WriteString("estimate independently the probability from 0.0 to 1.0 that the label ")
	b.WriteString("applies to the response. Respond with a single JSON object mapping ")
	b.WriteString("every label, spelled exactly as listed, to its score. No other text.\n\nLabels:\n")
	for _, l := range labels {
		b.WriteString("- ")
		b.WriteString(string(l))
		b.WriteString("\n")
	}
	return b.String()
}

// parseScoreObject decodes the model's JSON answer, tolerating a markdown
// code fence around it.
func parseScoreObject(requested []labeling.Label, content string) (labeling.Scores, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw map[string]float64
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("parse score object: %w", err)
	}

	scores := make(labeling.Scores, len(raw))
	for name, v := range raw {
		scores[labeling.Label(name)] = v
	}
	if missing := scores.Missing(requested); len(missing) > 0 {
		return nil, fmt.Errorf("score object missing %q", missing)
	}
	return scores, nil
}
