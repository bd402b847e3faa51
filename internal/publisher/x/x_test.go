package x

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Params{
		APIKey:            "ck",
		APISecret:         "cs",
		AccessToken:       "at",
		AccessTokenSecret: "ats",
		Endpoint:          srv.URL + "/",
		Timeout:           5 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestPublish(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/tweets", r.URL.Path)

		auth := r.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(auth, "OAuth "), auth)
		assert.Contains(t, auth, `oauth_consumer_key="ck"`)
		assert.Contains(t, auth, `oauth_token="at"`)
		assert.Contains(t, auth, `oauth_signature=`)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "本日は2024年1月27日（土）", body["text"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"1751234567890","text":"本日は2024年1月27日（土）"}}`))
	})

	res, err := c.Publish(context.Background(), "本日は2024年1月27日（土）")
	require.NoError(t, err)
	assert.Equal(t, "1751234567890", res.ID)
	assert.False(t, res.DryRun)
}

func TestPublishAPIError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"title":"Forbidden","detail":"You are not allowed to create a Tweet with duplicate content.","type":"about:blank","status":403}`))
	})

	_, err := c.Publish(context.Background(), "hello")
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load(), "publish must not retry")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Forbidden", apiErr.Title)
	assert.Contains(t, apiErr.Error(), "duplicate content")
}

func TestPublishErrorsArrayWithoutID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Text too long"}]}`))
	})

	_, err := c.Publish(context.Background(), "hello")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"Text too long"}, apiErr.Messages)
}

func TestPublishTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := NewClient(Params{APIKey: "ck", APISecret: "cs", AccessToken: "at", AccessTokenSecret: "ats", Endpoint: url})
	require.NoError(t, err)

	_, err = c.Publish(context.Background(), "hello")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Params{APIKey: "ck", APISecret: "cs", AccessToken: "at"})
	assert.Error(t, err)
}

func TestAPIErrorFallsBackToBody(t *testing.T) {
	err := &APIError{StatusCode: 502, Body: "bad gateway"}
	assert.Equal(t, "x api: HTTP 502: bad gateway", err.Error())
}
