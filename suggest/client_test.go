package suggest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return string(b)
}

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	c := NewClient(nil)
	c.getenv = func(key string) string {
		switch key {
		case envURL:
			return serverURL
		case envToken:
			return "test-token"
		}
		return ""
	}
	return c
}

func TestSuggestParsesChatResponse(t *testing.T) {
	var gotAuth string
	var gotPayload chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotPayload))
		io.WriteString(w, chatBody("1. **Pack bags**\n2. **Book hotel**"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	titles, err := c.Suggest(context.Background(), "plan a trip")
	require.NoError(t, err)
	assert.Equal(t, []Title{{Title: "Pack bags"}, {Title: "Book hotel"}}, titles)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, model, gotPayload.Model)
	require.Len(t, gotPayload.Messages, 1)
	assert.Equal(t, "user", gotPayload.Messages[0].Role)
	assert.Contains(t, gotPayload.Messages[0].Content, "'plan a trip'")
	assert.Contains(t, gotPayload.Messages[0].Content, "exactly 5")
}

func TestSuggestStripsThinkFromUpstreamReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatBody("<think>let me think</think>1. **Plan trip**"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	titles, err := c.Suggest(context.Background(), "trip")
	require.NoError(t, err)
	assert.Equal(t, []Title{{Title: "Plan trip"}}, titles)
}

func TestSuggestNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "upstream exploded")
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Suggest(context.Background(), "x")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "upstream exploded", ue.RawBody, "raw body is preserved for the caller")
}

func TestSuggestMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"error": "quota exceeded"}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Suggest(context.Background(), "x")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.RawBody, "quota exceeded")
}

func TestSuggestUnreachableEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	c := newTestClient(t, srv.URL)
	_, err := c.Suggest(context.Background(), "x")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Empty(t, ue.RawBody, "no body was received")
}

func TestSuggestEmptyEnvFailsSoftly(t *testing.T) {
	c := NewClient(nil)
	c.getenv = func(string) string { return "" }

	_, err := c.Suggest(context.Background(), "x")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue, "unset TOKEN/URL must surface as an error result, not a panic")
}
