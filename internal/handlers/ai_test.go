package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mhdyaseenvattappara/yazzfolio/internal/ai"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/handlers"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssistant struct {
	err error
}

func (f *fakeAssistant) AnalyzeImage(_ context.Context, uri string) (*ai.ImageAnalysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !strings.HasPrefix(uri, "data:image/") {
		return nil, ai.ErrInvalidImage
	}
	return &ai.ImageAnalysis{Title: "Neon Poster", Description: "A bold poster."}, nil
}

func (f *fakeAssistant) DraftReply(_ context.Context, in ai.ReplyInput) (*ai.ReplyDraft, error) {
	return &ai.ReplyDraft{Subject: "Re: hello", Body: "Hi " + in.SenderName}, f.err
}

func (f *fakeAssistant) Joke(context.Context) string { return ai.FallbackJoke }

func (f *fakeAssistant) RemoveBackground(context.Context, string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,AAAA", nil
}

func (f *fakeAssistant) SuggestTags(context.Context, ai.TagInput) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []string{"poster", "neon", "print", "bold", "type"}, nil
}

func aiMux(a handlers.Assistant) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/api/ai/{flow}", handlers.NewAIHandler(a, zap.NewNop()).Run)
	return mux
}

func post(mux http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAIHandler_Flows(t *testing.T) {
	mux := aiMux(&fakeAssistant{})

	rec := post(mux, "/admin/api/ai/analyze-image", `{"photoDataUri":"data:image/png;base64,AAAA"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"Neon Poster","description":"A bold poster."}`, rec.Body.String())

	rec = post(mux, "/admin/api/ai/analyze-image", `{"photoDataUri":"https://example.com/a.png"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = post(mux, "/admin/api/ai/draft-reply", `{"senderName":"Ana","originalMessage":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hi Ana")

	rec = post(mux, "/admin/api/ai/joke", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "light attracts bugs")

	rec = post(mux, "/admin/api/ai/suggest-tags", `{"title":"Poster","description":"Neon"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tags":["poster","neon","print","bold","type"]}`, rec.Body.String())

	rec = post(mux, "/admin/api/ai/remove-background", `{"photoDataUri":"data:image/png;base64,AAAA"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"image":"data:image/png;base64,AAAA"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, post(mux, "/admin/api/ai/poem", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(mux, "/admin/api/ai/suggest-tags", `{`).Code)
}

func TestAIHandler_RateLimited(t *testing.T) {
	mux := aiMux(&fakeAssistant{err: fmt.Errorf("generate: %w", ai.ErrRateLimited)})

	rec := post(mux, "/admin/api/ai/remove-background", `{"photoDataUri":"data:image/png;base64,AAAA"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"The image service is busy. Please wait a minute and try again."}`, rec.Body.String())

	rec = post(mux, "/admin/api/ai/suggest-tags", `{"title":"Poster"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "ai_rate_limited")
}

func TestAIHandler_NotConfigured(t *testing.T) {
	mux := aiMux(&fakeAssistant{err: ai.ErrNotConfigured})
	rec := post(mux, "/admin/api/ai/analyze-image", `{"photoDataUri":"data:image/png;base64,AAAA"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type fakeUploader struct {
	got  []byte
	err  error
	kind string
}

func (f *fakeUploader) Upload(_ context.Context, filename, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.got, _ = io.ReadAll(body)
	f.kind = contentType
	return "https://cdn.example.com/uploads/" + filename, nil
}

func multipartBody(t *testing.T, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func uploadRequest(t *testing.T, up media.Uploader, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, name, content)
	req := httptest.NewRequest(http.MethodPost, "/admin/api/uploads", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	handlers.NewUploadHandler(up, zap.NewNop()).Upload(rec, req)
	return rec
}

func TestUploadHandler(t *testing.T) {
	var png1 bytes.Buffer
	require.NoError(t, png.Encode(&png1, image.NewRGBA(image.Rect(0, 0, 2, 2))))

	up := &fakeUploader{}
	rec := uploadRequest(t, up, "logo.png", png1.Bytes())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"url":"https://cdn.example.com/uploads/logo.png"}`, rec.Body.String())
	assert.Equal(t, "image/png", up.kind)
	assert.Equal(t, png1.Bytes(), up.got)

	rec = uploadRequest(t, &fakeUploader{}, "notes.txt", []byte("plain text"))
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec = uploadRequest(t, &fakeUploader{err: errors.New("bucket unavailable")}, "logo.png", png1.Bytes())
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upload_failed")
}
