// internal/analyzer/gemini.go
package analyzer

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type GeminiClient struct {
	client   *genai.Client
	model    string
	style    PromptStyle
	language string
}

type GeminiConfig struct {
	APIKey   string
	Model    string
	Style    PromptStyle
	Language string
	// BaseURL overrides the Gemini API endpoint. Empty uses the default.
	BaseURL string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{
		client:   client,
		model:    cfg.Model,
		style:    cfg.Style,
		language: cfg.Language,
	}, nil
}

// Analyze makes exactly one GenerateContent call: the prompt text followed by
// the inline image.
func (g *GeminiClient) Analyze(ctx context.Context, img Image, recommendedIntake int) (string, error) {
	prompt := BuildPrompt(g.style, g.language, recommendedIntake)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(img.Data, img.MediaType),
		}, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("model returned no text")
	}
	return text, nil
}
