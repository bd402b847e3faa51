package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chrona-bot/internal/api"
	"chrona-bot/internal/llm"
)

func newTestGenerator(t *testing.T, handler http.HandlerFunc) *Generator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g, err := New(Params{APIKey: "sk-test", Prompt: "write something", Endpoint: srv.URL, MaxTokens: 50})
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model     string              `json:"model"`
			MaxTokens int                 `json:"max_tokens"`
			Messages  []map[string]string `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DefaultModel, body.Model)
		assert.Equal(t, 50, body.MaxTokens)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "write something", body.Messages[0]["content"])

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"\"Seasons turn quietly.\""}}]}`))
	})

	got, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Seasons turn quietly.", got)
}

func TestGenerateHTTPError(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := g.Generate(context.Background())
	require.Error(t, err)

	var httpErr *api.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
}

func TestGenerateNoChoices(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := g.Generate(context.Background())
	assert.True(t, errors.Is(err, llm.ErrEmptyResponse))
}

func TestGenerateMalformedJSON(t *testing.T) {
	g := newTestGenerator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	_, err := g.Generate(context.Background())
	assert.Error(t, err)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(Params{Prompt: "p"})
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}
