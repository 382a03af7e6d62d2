// Package narrator writes the next scene of a story with Gemini.
package narrator

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.5-pro"

// Gemini narrates with a Gemini model.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini connects to Gemini. systemPrompt is sent as the system
// instruction of every request.
func NewGemini(ctx context.Context, apiKey, model, systemPrompt string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create generative client: %w", err)
	}
	m := client.GenerativeModel(model)
	if systemPrompt != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}
	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// Narrate returns the text of the first candidate.
func (g *Gemini) Narrate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate scene: %w", err)
	}
	text := getText(resp)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("generate scene: empty response")
	}
	return text, nil
}

func getText(resp *genai.GenerateContentResponse) string {
	var text string
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text += string(txt)
			}
		}
	}
	return text
}
