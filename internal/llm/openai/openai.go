package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chrona-bot/internal/api"
	"chrona-bot/internal/llm"
)

const (
	DefaultEndpoint = "https://api.openai.com"
	DefaultModel    = "gpt-4o-mini"
)

type Params struct {
	APIKey      string
	Model       string
	Prompt      string
	Endpoint    string
	MaxTokens   int32
	Temperature float32
	Timeout     time.Duration
}

// Generator calls the chat completions API with the prompt as the only user message.
type Generator struct {
	client *api.Client
	p      Params
}

func New(p Params, opts ...api.ClientOption) (*Generator, error) {
	if p.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY missing")
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}

	opts = append([]api.ClientOption{
		api.WithBaseURL(p.Endpoint),
		api.WithTimeout(p.Timeout),
		api.WithHeader("Authorization", "Bearer "+p.APIKey),
	}, opts...)
	return &Generator{client: api.NewClient(opts...), p: p}, nil
}

func (g *Generator) Generate(ctx context.Context) (string, error) {
	body := map[string]any{
		"model":    g.p.Model,
		"messages": []map[string]string{{"role": "user", "content": g.p.Prompt}},
	}
	if g.p.MaxTokens > 0 {
		body["max_tokens"] = g.p.MaxTokens
	}
	if g.p.Temperature > 0 {
		body["temperature"] = g.p.Temperature
	}

	resp, err := g.client.POST(ctx, "/v1/chat/completions", body)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}
	if len(r.Choices) == 0 {
		return "", llm.ErrEmptyResponse
	}

	out := llm.CleanSentence(r.Choices[0].Message.Content)
	if out == "" {
		return "", llm.ErrEmptyResponse
	}
	return out, nil
}
