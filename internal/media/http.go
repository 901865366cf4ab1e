package media

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPUploader posts images as multipart form data to an image host
// answering {"data": {"url": "..."}} (imgbb style).
type HTTPUploader struct {
	client *resty.Client
	url    string
	apiKey string
}

func NewHTTPUploader(url, apiKey string, client *resty.Client) *HTTPUploader {
	if client == nil {
		client = resty.New().SetTimeout(30 * time.Second)
	}
	return &HTTPUploader{client: client, url: url, apiKey: apiKey}
}

type hostResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (u *HTTPUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if _, ok := AllowedTypes[contentType]; !ok {
		return "", ErrUnsupportedType
	}
	var out hostResponse
	req := u.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, body).
		SetResult(&out).
		SetError(&out)
	if u.apiKey != "" {
		req.SetQueryParam("key", u.apiKey)
	}
	resp, err := req.Post(u.url)
	if err != nil {
		return "", fmt.Errorf("media: upload: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("media: upload: status %d: %s", resp.StatusCode(), out.Error.Message)
	}
	if out.Data.URL == "" {
		return "", fmt.Errorf("media: upload: no url in response")
	}
	return out.Data.URL, nil
}
