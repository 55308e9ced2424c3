package llm

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google's Gemini models.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.0-flash"
}

var _ Provider = (*GeminiProvider)(nil)

const defaultGeminiModel = "gemini-2.0-flash"

func (p *GeminiProvider) newClient(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return client, nil
}

func (p *GeminiProvider) resolveModel(options map[string]interface{}) string {
	model := p.Model
	if model == "" {
		model = defaultGeminiModel
	}
	return optionString(options, "model", model)
}

func buildGeminiConfig(systemPrompt string) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}
	return config
}

// GenerateResponse sends a generateContent request and returns the full text.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	client, err := p.newClient(ctx)
	if err != nil {
		return "", err
	}

	result, err := client.Models.GenerateContent(
		ctx,
		p.resolveModel(options),
		genai.Text(prompt),
		buildGeminiConfig(systemPrompt),
	)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}

// StreamResponse forwards each partial generateContent response to fn as it
// arrives.
func (p *GeminiProvider) StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}, fn StreamFunc) error {
	client, err := p.newClient(ctx)
	if err != nil {
		return err
	}

	for resp, err := range client.Models.GenerateContentStream(
		ctx,
		p.resolveModel(options),
		genai.Text(prompt),
		buildGeminiConfig(systemPrompt),
	) {
		if err != nil {
			return fmt.Errorf("gemini streaming failed: %w", err)
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		if err := fn(text); err != nil {
			return err
		}
	}
	return nil
}
