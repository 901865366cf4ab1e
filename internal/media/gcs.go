package media

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSUploader writes objects to a Cloud Storage bucket and makes them publicly readable.
type GCSUploader struct {
	client *storage.Client
	bucket string
}

func NewGCSUploader(ctx context.Context, bucket string) (*GCSUploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("media: gcs bucket not set")
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("media: gcs client: %w", err)
	}
	return &GCSUploader{client: client, bucket: bucket}, nil
}

func (u *GCSUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key, err := ObjectKey(filename, contentType)
	if err != nil {
		return "", err
	}
	obj := u.client.Bucket(u.bucket).Object(key)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(wc, body); err != nil {
		wc.Close()
		return "", err
	}
	if err := wc.Close(); err != nil {
		return "", err
	}
	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", err
	}
	return "https://storage.googleapis.com/" + u.bucket + "/" + key, nil
}

func (u *GCSUploader) Close() error { return u.client.Close() }
