package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pngURI = "data:image/png;base64,iVBORw0KGgo="

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"parts": []any{map[string]any{"text": text}}},
		}},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.AIConfig{APIKey: "test-key", Model: "gemini-test", BaseURL: srv.URL}, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestAnalyzeImage(t *testing.T) {
	var got generateRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, textResponse("```json\n{\"title\":\"Neon Poster\",\"description\":\"Bold type.\"}\n```"))
	})

	out, err := c.AnalyzeImage(context.Background(), pngURI)
	require.NoError(t, err)
	assert.Equal(t, "Neon Poster", out.Title)
	assert.Equal(t, "Bold type.", out.Description)

	require.Len(t, got.Contents, 1)
	require.Len(t, got.Contents[0].Parts, 2)
	assert.Equal(t, "image/png", got.Contents[0].Parts[1].InlineData.MimeType)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
}

func TestAnalyzeImage_InvalidURI(t *testing.T) {
	c := New(config.AIConfig{APIKey: "k"}, nil)
	_, err := c.AnalyzeImage(context.Background(), "https://example.com/a.png")
	assert.ErrorIs(t, err, ErrInvalidImage)
	_, err = c.AnalyzeImage(context.Background(), "data:text/plain;base64,aGk=")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestDraftReply(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Ana")
		writeJSON(w, http.StatusOK, textResponse(`{"subject":"Re: Logo","body":"Hi Ana, thanks!"}`))
	})
	out, err := c.DraftReply(context.Background(), ReplyInput{SenderName: "Ana", OriginalMessage: "Can you design a logo?"})
	require.NoError(t, err)
	assert.Equal(t, "Re: Logo", out.Subject)
	assert.Equal(t, "Hi Ana, thanks!", out.Body)
}

func TestJoke(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, textResponse("  Kerning jokes are hard to space.  "))
	})
	assert.Equal(t, "Kerning jokes are hard to space.", c.Joke(context.Background()))

	failing := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": map[string]any{"message": "boom"}})
	})
	assert.Equal(t, FallbackJoke, failing.Joke(context.Background()))

	unconfigured := New(config.AIConfig{}, nil)
	assert.Equal(t, FallbackJoke, unconfigured.Joke(context.Background()))
}

func TestRemoveBackground(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"candidates": []any{map[string]any{"content": map[string]any{"parts": []any{
				map[string]any{"text": "Here you go"},
				map[string]any{"inlineData": map[string]any{"mimeType": "image/png", "data": "AAAA"}},
			}}}},
		})
	})
	out, err := c.RemoveBackground(context.Background(), pngURI)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", out)
}

func TestRemoveBackground_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"}})
	})
	_, err := c.RemoveBackground(context.Background(), pngURI)
	assert.ErrorIs(t, err, ErrRateLimited)
}

func TestRemoveBackground_NoImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, textResponse("I cannot do that"))
	})
	_, err := c.RemoveBackground(context.Background(), pngURI)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestSuggestTags(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, textResponse(`{"tags":["Branding","branding","#logo"," ","print","poster","identity","type","color","grid"]}`))
	})
	tags, err := c.SuggestTags(context.Background(), TagInput{Title: "Coffee brand"})
	require.NoError(t, err)
	assert.Equal(t, []string{"branding", "logo", "print", "poster", "identity", "type", "color"}, tags)
}

func TestNotConfigured(t *testing.T) {
	c := New(config.AIConfig{}, nil)
	_, err := c.SuggestTags(context.Background(), TagInput{Title: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestStripFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFence(` {"a":1} `))
	assert.True(t, strings.HasPrefix(stripFence("```\n[1]\n```"), "["))
}
