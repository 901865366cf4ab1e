package media

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// S3Uploader stores images in an S3 bucket.
type S3Uploader struct {
	uploader *s3manager.Uploader
	bucket   string
	region   string
}

func NewS3Uploader(bucket, region string) (*S3Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("media: s3 bucket not set")
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("media: aws session: %w", err)
	}
	return &S3Uploader{uploader: s3manager.NewUploader(sess), bucket: bucket, region: region}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	key, err := ObjectKey(filename, contentType)
	if err != nil {
		return "", err
	}
	out, err := u.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("media: s3 upload: %w", err)
	}
	return out.Location, nil
}
