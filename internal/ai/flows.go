package ai

import (
	"context"
	"fmt"
	"strings"
)

// FallbackJoke is returned when the model cannot be reached.
const FallbackJoke = "Why do designers love dark mode? Because light attracts bugs."

const (
	MinTags = 5
	MaxTags = 7
)

type ImageAnalysis struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalyzeImage proposes a portfolio title and description for an image data URI.
func (c *Client) AnalyzeImage(ctx context.Context, photoDataURI string) (*ImageAnalysis, error) {
	img, err := parseDataURI(photoDataURI)
	if err != nil {
		return nil, err
	}
	var out ImageAnalysis
	err = c.generateJSON(ctx, []part{
		{Text: "You are a creative director writing portfolio captions. Look at the image and answer with JSON " +
			`{"title": "...", "description": "..."}. The title is at most 6 words; the description is 2 to 3 sentences ` +
			"about the design choices."},
		{InlineData: img},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Title == "" && out.Description == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}

type ReplyInput struct {
	SenderName      string `json:"senderName" validate:"required"`
	OriginalMessage string `json:"originalMessage" validate:"required"`
}

type ReplyDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// DraftReply writes a friendly reply to a contact message.
func (c *Client) DraftReply(ctx context.Context, in ReplyInput) (*ReplyDraft, error) {
	var out ReplyDraft
	prompt := fmt.Sprintf("Draft a warm, professional email reply from a freelance designer to %s, who wrote:\n\n%s\n\n"+
		`Answer with JSON {"subject": "...", "body": "..."}. Sign off without a name.`, in.SenderName, in.OriginalMessage)
	if err := c.generateJSON(ctx, []part{{Text: prompt}}, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Body) == "" {
		return nil, ErrEmptyResponse
	}
	return &out, nil
}

// Joke returns a short design joke, or FallbackJoke when the model fails.
func (c *Client) Joke(ctx context.Context) string {
	temp := 1.0
	text, err := c.generateText(ctx, generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: "Tell one short, clean joke about graphic design. Reply with the joke only."}}}},
		GenerationConfig: &generationConfig{Temperature: &temp},
	})
	if err != nil {
		return FallbackJoke
	}
	return text
}

// RemoveBackground returns the image with a transparent background as a data URI.
func (c *Client) RemoveBackground(ctx context.Context, photoDataURI string) (string, error) {
	img, err := parseDataURI(photoDataURI)
	if err != nil {
		return "", err
	}
	parts, err := c.generate(ctx, generateRequest{
		Contents: []content{{Role: "user", Parts: []part{
			{InlineData: img},
			{Text: "Remove the background of this image. Keep the main subject untouched and return a PNG with a transparent background."},
		}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return "", err
	}
	for _, p := range parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			return "data:" + p.InlineData.MimeType + ";base64," + p.InlineData.Data, nil
		}
	}
	return "", ErrEmptyResponse
}

type TagInput struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

// SuggestTags proposes between MinTags and MaxTags unique tags for a portfolio item.
func (c *Client) SuggestTags(ctx context.Context, in TagInput) ([]string, error) {
	var out struct {
		Tags []string `json:"tags"`
	}
	prompt := fmt.Sprintf("Suggest %d to %d short, lowercase portfolio tags for this project.\nTitle: %s\nDescription: %s\n"+
		`Answer with JSON {"tags": ["..."]}.`, MinTags, MaxTags, in.Title, in.Description)
	if err := c.generateJSON(ctx, []part{{Text: prompt}}, &out); err != nil {
		return nil, err
	}
	tags := normalizeTags(out.Tags)
	if len(tags) == 0 {
		return nil, ErrEmptyResponse
	}
	return tags, nil
}

// normalizeTags trims, lowercases and dedupes tags, keeping at most MaxTags.
func normalizeTags(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, MaxTags)
	for _, t := range in {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
