package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	appcfg "jobport/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Store uploads documents to an S3-compatible bucket (R2 in production)
// and returns the public URL of the stored object.
type S3Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3Store(ctx context.Context, cfg appcfg.StorageConfig) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("%w: empty bucket", ErrStore)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.AccountID != "" {
			o.BaseEndpoint = aws.String(
				fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
			)
		}
	})

	return &S3Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(strings.TrimSpace(cfg.PublicURL), "/"),
	}, nil
}

func (s *S3Store) Store(ctx context.Context, data []byte, mimeType, filename string) (string, error) {
	if s == nil || s.client == nil {
		return "", fmt.Errorf("%w: not configured", ErrStore)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrStore)
	}

	key := objectKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStore, err)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

func objectKey(filename string) string {
	name := strings.TrimSpace(filename)
	name = strings.ReplaceAll(name, "/", "_")
	if name == "" {
		name = "document"
	}
	return fmt.Sprintf("resumes/%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], name)
}
