package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"chrona-bot/internal/llm"
)

const DefaultModel = "gemini-2.0-flash"

type Params struct {
	APIKey      string
	Model       string
	Prompt      string
	Endpoint    string // optional base URL override
	MaxTokens   int32
	Temperature float32
	Timeout     time.Duration
}

// Generator asks Gemini for one short sentence per call.
type Generator struct {
	client *genai.Client
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func New(ctx context.Context, p Params) (*Generator, error) {
	if p.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY missing")
	}
	if p.Prompt == "" {
		return nil, errors.New("gemini prompt is empty")
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}

	cc := &genai.ClientConfig{
		APIKey:  p.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.Endpoint != "" {
		cc.HTTPOptions.BaseURL = p.Endpoint
	}
	if p.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: p.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{}
	if p.MaxTokens > 0 {
		config.MaxOutputTokens = p.MaxTokens
	}
	if p.Temperature > 0 {
		config.Temperature = genai.Ptr(p.Temperature)
	}

	return &Generator{client: client, model: p.Model, prompt: p.Prompt, config: config}, nil
}

func (g *Generator) Generate(ctx context.Context) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(g.prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := llm.CleanSentence(resp.Text())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	return g.model
}
