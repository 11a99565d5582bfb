package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores one object and returns the URL clients should use.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

type S3Uploader struct {
	uploader *manager.Uploader
	bucket   string
}

func NewS3Uploader(ctx context.Context, bucket string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Uploader{uploader: manager.NewUploader(client), bucket: bucket}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	result, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         "public-read",
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	return result.Location, nil
}

// InlineUploader embeds the file in the listing itself as a data URI. It
// needs no object store and is the default for development.
type InlineUploader struct {
	MaxBytes int64
}

func (u InlineUploader) Upload(_ context.Context, _ string, contentType string, body io.Reader) (string, error) {
	limit := u.MaxBytes
	if limit <= 0 {
		limit = 2 << 20
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(body, limit+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if n > limit {
		return "", fmt.Errorf("image exceeds %d bytes", limit)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func New(ctx context.Context, driver, bucket string, maxInline int64) (Uploader, error) {
	switch driver {
	case "s3":
		return NewS3Uploader(ctx, bucket)
	case "inline", "":
		return InlineUploader{MaxBytes: maxInline}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}
