package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	_ "golang.org/x/image/webp"
)

// HTTPLoader fetches remote images for the raster backend. data: URLs are
// decoded in place.
type HTTPLoader struct {
	client *resty.Client
}

func NewHTTPLoader(client *resty.Client) *HTTPLoader {
	if client == nil {
		client = resty.New().SetTimeout(10 * time.Second)
	}
	return &HTTPLoader{client: client}
}

func (l *HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	if strings.HasPrefix(src, "data:") {
		return decodeDataURL(src)
	}
	resp, err := l.client.R().SetContext(ctx).Get(src)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch image: status %d", resp.StatusCode())
	}
	img, _, err := image.Decode(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

func decodeDataURL(src string) (image.Image, error) {
	meta, payload, ok := strings.Cut(src, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported data url")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
