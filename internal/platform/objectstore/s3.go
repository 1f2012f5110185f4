package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Store keeps submission photos in an S3 bucket and returns the public
// object URL. An Endpoint override points it at MinIO in local stacks.
type S3Store struct {
	client s3iface.S3API
	bucket string
	base   string
	logger *slog.Logger
}

type S3Config struct {
	Region   string
	Bucket   string
	Endpoint string
}

func NewS3Store(cfg S3Config, logger *slog.Logger) (*S3Store, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}

	base := fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		base = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &S3Store{
		client: s3.New(sess),
		bucket: cfg.Bucket,
		base:   base,
		logger: logger,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key string, contentType string, data []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.logger.Error("photo upload failed",
			"event", "objectstore_put_failed",
			"module", "internal/platform/objectstore",
			"layer", "platform",
			"key", key,
			"error", err.Error(),
		)
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return s.base + "/" + key, nil
}
