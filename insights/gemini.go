// ABOUTME: Gemini-backed implementation of the audit Model
// ABOUTME: Requests JSON output constrained by the response schema
package insights

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// Model is the opaque generative collaborator behind an audit.
type Model interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiOptions configures the hosted model client.
type GeminiOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; empty uses the public one.
	BaseURL     string
	Temperature float32
}

// GeminiModel calls the Gemini API through google.golang.org/genai.
type GeminiModel struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiModel creates a client for the given options.
func NewGeminiModel(ctx context.Context, opts GeminiOptions) (*GeminiModel, error) {
	if opts.APIKey == "" {
		return nil, errors.New("Gemini API key is required (set GEMINI_API_KEY)")
	}
	if opts.Model == "" {
		return nil, errors.New("Gemini model name is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client: client,
		model:  opts.Model,
		config: generateConfig(opts.Temperature),
	}, nil
}

func generateConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ResponseSchema(),
		// Lowest latency on Flash models.
		ThinkingConfig: &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
		Temperature:    genai.Ptr(temperature),
	}
}

// Name returns the configured model name.
func (m *GeminiModel) Name() string {
	return m.model
}

// Generate sends a single-turn prompt and returns the reply text.
func (m *GeminiModel) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), m.config)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return resp.Text(), nil
}
