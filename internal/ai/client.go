// Package ai wraps the generative model used by the admin content helpers.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/config"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured = errors.New("ai_not_configured")
	ErrRateLimited   = errors.New("ai_rate_limited")
	ErrEmptyResponse = errors.New("ai_empty_response")
	ErrInvalidImage  = errors.New("invalid_image")
)

// Client calls the Gemini generateContent REST endpoint.
type Client struct {
	http   *resty.Client
	apiKey string
	model  string
	log    *zap.Logger
}

func New(cfg config.AIConfig, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:   resty.New().SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).SetTimeout(60 * time.Second),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		log:    log,
	}
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType   string   `json:"responseMimeType,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, req generateRequest) ([]part, error) {
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}
	var out generateResponse
	var apiErr apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/models/" + c.model + ":generateContent")
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	if resp.StatusCode() == http.StatusTooManyRequests {
		return nil, ErrRateLimited
	}
	if resp.IsError() {
		c.log.Warn("model request failed", zap.Int("status", resp.StatusCode()), zap.String("message", apiErr.Error.Message))
		return nil, fmt.Errorf("generate: status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}
	return out.Candidates[0].Content.Parts, nil
}

func (c *Client) generateText(ctx context.Context, req generateRequest) (string, error) {
	parts, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// generateJSON asks for a JSON answer and decodes it into dst.
func (c *Client) generateJSON(ctx context.Context, parts []part, dst any) error {
	text, err := c.generateText(ctx, generateRequest{
		Contents:         []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFence(text)), dst); err != nil {
		return fmt.Errorf("decode model output: %w", err)
	}
	return nil
}

// stripFence removes a ```json fence some models wrap around JSON output.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

// parseDataURI splits data:<mime>;base64,<payload>.
func parseDataURI(uri string) (*inlineData, error) {
	meta, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasPrefix(meta, "data:") || !strings.HasSuffix(meta, ";base64") || payload == "" {
		return nil, ErrInvalidImage
	}
	mime := strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64")
	if !strings.HasPrefix(mime, "image/") {
		return nil, ErrInvalidImage
	}
	return &inlineData{MimeType: mime, Data: payload}, nil
}
