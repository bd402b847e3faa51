// Package x publishes posts through the X API v2 with OAuth 1.0a user context.
package x

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"chrona-bot/internal/api"
	"chrona-bot/internal/types"
)

const DefaultEndpoint = "https://api.twitter.com"

type Params struct {
	APIKey            string // consumer key
	APISecret         string // consumer secret
	AccessToken       string
	AccessTokenSecret string
	Endpoint          string
	Timeout           time.Duration
}

type Client struct {
	api *api.Client
}

// APIError is a non-successful answer from the posting endpoint.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
	Messages   []string
	Body       string
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "x api: HTTP %d", e.StatusCode)
	if e.Title != "" {
		b.WriteString(" " + e.Title)
	}
	if e.Detail != "" {
		b.WriteString(": " + e.Detail)
	}
	if len(e.Messages) > 0 {
		b.WriteString(" [" + strings.Join(e.Messages, "; ") + "]")
	}
	if e.Title == "" && e.Detail == "" && len(e.Messages) == 0 && e.Body != "" {
		b.WriteString(": " + e.Body)
	}
	return b.String()
}

func NewClient(p Params, opts ...api.ClientOption) (*Client, error) {
	if p.APIKey == "" || p.APISecret == "" || p.AccessToken == "" || p.AccessTokenSecret == "" {
		return nil, errors.New("x api credentials (API key/secret, access token/secret) are incomplete")
	}
	if p.Endpoint == "" {
		p.Endpoint = DefaultEndpoint
	}

	config := oauth1.NewConfig(p.APIKey, p.APISecret)
	token := oauth1.NewToken(p.AccessToken, p.AccessTokenSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	opts = append([]api.ClientOption{
		api.WithBaseURL(strings.TrimRight(p.Endpoint, "/")),
		api.WithTimeout(p.Timeout),
		api.WithHTTPClient(httpClient),
	}, opts...)
	return &Client{api: api.NewClient(opts...)}, nil
}

type errorPayload struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Publish creates one post. It never retries.
func (c *Client) Publish(ctx context.Context, text string) (types.PostResult, error) {
	resp, err := c.api.POST(ctx, "/2/tweets", map[string]string{"text": text})
	if err != nil {
		var httpErr *api.HTTPError
		if errors.As(err, &httpErr) {
			return types.PostResult{}, newAPIError(httpErr.StatusCode, httpErr.Body)
		}
		return types.PostResult{}, fmt.Errorf("x api request failed: %w", err)
	}

	var r struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		return types.PostResult{}, err
	}
	if r.Data.ID == "" {
		// the API can answer 200 with only an errors array
		apiErr := newAPIError(resp.StatusCode, resp.Body)
		if apiErr.Detail == "" && len(apiErr.Messages) == 0 {
			apiErr.Detail = "response carries no post id"
		}
		return types.PostResult{}, apiErr
	}

	return types.PostResult{ID: r.Data.ID, Text: r.Data.Text}, nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: string(body)}
	var p errorPayload
	if err := json.Unmarshal(body, &p); err == nil {
		apiErr.Title = p.Title
		apiErr.Detail = p.Detail
		for _, e := range p.Errors {
			if e.Message != "" {
				apiErr.Messages = append(apiErr.Messages, e.Message)
			}
		}
	}
	return apiErr
}
