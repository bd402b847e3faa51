package claude

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"chrona-bot/internal/api"
	"chrona-bot/internal/llm"
)

const (
	// default messages endpoint (public Anthropic); proxies are set via CLAUDE_API_ENDPOINT
	DefaultEndpoint = "https://api.anthropic.com"
	DefaultModel    = "claude-3-5-haiku-latest"
	apiVersion      = "2023-06-01"
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

// Generator calls the Anthropic Messages API with the prompt as the only user turn.
type Generator struct {
	client *api.Client
	p      Params
}

func New(p Params, opts ...api.ClientOption) (*Generator, error) {
	if p.APIKey == "" {
		return nil, errors.New("CLAUDE_API_KEY missing")
	}
	if p.Model == "" {
		p.Model = DefaultModel
	}
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}
	if p.MaxTokens <= 0 {
		// the API rejects requests without max_tokens
		p.MaxTokens = 100
	}

	opts = append([]api.ClientOption{
		api.WithBaseURL(strings.TrimRight(p.Endpoint, "/")),
		api.WithTimeout(p.Timeout),
		api.WithHeader("x-api-key", p.APIKey),
		api.WithHeader("anthropic-version", apiVersion),
	}, opts...)
	return &Generator{client: api.NewClient(opts...), p: p}, nil
}

func (g *Generator) Generate(ctx context.Context) (string, error) {
	body := map[string]any{
		"model":      g.p.Model,
		"max_tokens": g.p.MaxTokens,
		"messages":   []map[string]string{{"role": "user", "content": g.p.Prompt}},
	}
	if g.p.Temperature > 0 {
		body["temperature"] = g.p.Temperature
	}

	resp, err := g.client.POST(ctx, "/v1/messages", body)
	if err != nil {
		return "", fmt.Errorf("claude request failed: %w", err)
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, c := range r.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	out := llm.CleanSentence(sb.String())
	if out == "" {
		return "", llm.ErrEmptyResponse
	}
	return out, nil
}
