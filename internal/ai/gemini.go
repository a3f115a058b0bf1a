// README: Gemini-backed intent classifier for the clinic assist endpoint.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"physio/internal/modules/assist"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON replies and deterministic sampling so the same query
	// classifies to the same structure.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// CompleteIntent sends the classification instruction plus the user's
// free text and returns the model's reply text with any markdown fences
// stripped. The reply is raw: validation happens downstream.
func (p *GeminiProvider) CompleteIntent(ctx context.Context, userQuery string) (string, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Query: %s", systemPrompt(), userQuery)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already keep fences out; strip them anyway.
	return cleanJSONString(responseText.String()), nil
}

// systemPrompt enumerates the permitted actions, services, and date
// ranges. The vocabularies mirror the assist schema so the model cannot
// be told about an action the validator would reject.
func systemPrompt() string {
	actions := make([]string, len(assist.Actions))
	for i, a := range assist.Actions {
		actions[i] = "- " + string(a)
	}

	return fmt.Sprintf(`You are an AI assistant for a physiotherapy clinic booking system.

You must convert user queries into structured JSON.

Allowed actions:
%s

Allowed services:
- massage
- chiropractic
- physiotherapy
- accupuncture
- Osteopathy

Allowed date ranges:
- yesterday
- today
- tomorrow
- this_week
- last_week
- next_week
- this_month
- last_month
- next_month
- this_year
- last_year
- next_year
A bare 4-digit year (e.g. "2024") or a literal "YYYY-MM-DD to YYYY-MM-DD" range is also allowed.

If no service mentioned, omit it.
If no date range mentioned, omit it.

Respond ONLY with JSON.`, strings.Join(actions, "\n"))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
