// Package media hosts uploaded images and returns their public URL.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/mhdyaseenvattappara/yazzfolio/internal/config"
	"go.uber.org/zap"
)

var ErrUnsupportedType = errors.New("unsupported_media_type")

// Uploader stores an image and returns a URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

// AllowedTypes lists the accepted upload content types and their extensions.
var AllowedTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// ObjectKey builds a unique object name under uploads/ keeping the content type's extension.
func ObjectKey(filename, contentType string) (string, error) {
	ext, ok := AllowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), path.Ext(filename))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '_', r == '.':
			return '-'
		}
		return -1
	}, base)
	if base == "" || base == "-" {
		base = "image"
	}
	return fmt.Sprintf("uploads/%s-%s%s", uuid.NewString()[:8], base, ext), nil
}

// New returns the uploader selected by cfg.Backend.
func New(ctx context.Context, cfg config.MediaConfig, log *zap.Logger) (Uploader, error) {
	switch cfg.Backend {
	case "gcs":
		return NewGCSUploader(ctx, cfg.Bucket)
	case "s3":
		return NewS3Uploader(cfg.Bucket, cfg.Region)
	case "http", "":
		return NewHTTPUploader(cfg.UploadURL, cfg.APIKey, nil), nil
	}
	log.Warn("unknown media backend", zap.String("backend", cfg.Backend))
	return nil, fmt.Errorf("media: unknown backend %q", cfg.Backend)
}
