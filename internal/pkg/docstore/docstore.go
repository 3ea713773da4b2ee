// Package docstore archives generated documents (invoices) in S3-compatible
// object storage.
package docstore

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
)

// Config holds the S3 connection settings, read from DOCSTORE_* env vars.
type Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
}

// LoadConfigFromEnv reads the docstore settings from the environment.
func LoadConfigFromEnv() *Config {
	return &Config{
		Bucket:          env.GetEnv("DOCSTORE_BUCKET", ""),
		Region:          env.GetEnv("DOCSTORE_REGION", "eu-central-1"),
		AccessKeyID:     env.GetEnv("DOCSTORE_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("DOCSTORE_SECRET_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("DOCSTORE_ENDPOINT_URL", ""),
	}
}

// IsEnabled reports whether archival is configured at all.
func (c *Config) IsEnabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Store is the archival operation the notification dispatcher depends on.
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// Client is the S3-backed document store.
type Client struct {
	s3Client *s3.Client
	bucket   string
}

// NewClient creates the S3 document store. Returns an error when archival is
// not configured; callers treat a nil store as "archival disabled".
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("document store is disabled")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	log.Infof("[DocStore] Initialized S3 client for bucket: %s", cfg.Bucket)
	return &Client{s3Client: s3Client, bucket: cfg.Bucket}, nil
}

// Put uploads one document under the given key.
func (c *Client) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}
