// Package storage provides object storage implementations for file operations.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	catalogapp "github.com/marketplace/backend/internal/application/catalog"
	infraconfig "github.com/marketplace/backend/internal/infrastructure/config"
)

var _ catalogapp.ObjectStorage = (*S3ObjectStorage)(nil)

const (
	defaultEndpoint = "http://localhost:9000"
	defaultRegion   = "us-east-1"
)

// S3ObjectStorage stores uploaded files in any S3-compatible backend
// (AWS S3, MinIO, RustFS, etc.) and serves them through a public base URL.
type S3ObjectStorage struct {
	client    *s3.Client
	bucket    string
	endpoint  string
	publicURL string
	logger    *zap.Logger
}

// S3ObjectStorageOption configures an S3ObjectStorage.
type S3ObjectStorageOption func(*S3ObjectStorage)

// WithLogger replaces the default no-op logger.
func WithLogger(logger *zap.Logger) S3ObjectStorageOption {
	return func(s *S3ObjectStorage) {
		s.logger = logger
	}
}

// normalizeEndpoint fills in the default endpoint and a scheme matching
// the UseSSL setting when the configured value has neither.
func normalizeEndpoint(cfg *infraconfig.StorageConfig) (string, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		endpoint = scheme + "://" + endpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return "", fmt.Errorf("invalid storage endpoint: %w", err)
	}
	return endpoint, nil
}

// NewS3ObjectStorage builds a client for the configured bucket. Any
// S3-compatible backend works as long as it accepts static credentials.
func NewS3ObjectStorage(cfg *infraconfig.StorageConfig, opts ...S3ObjectStorageOption) (*S3ObjectStorage, error) {
	switch {
	case cfg == nil:
		return nil, errors.New("storage configuration is required")
	case cfg.Bucket == "":
		return nil, errors.New("storage bucket is required")
	case cfg.AccessKey == "":
		return nil, errors.New("storage access key is required")
	case cfg.SecretKey == "":
		return nil, errors.New("storage secret key is required")
	}

	endpoint, err := normalizeEndpoint(cfg)
	if err != nil {
		return nil, err
	}

	region := cfg.Region
	if region == "" {
		region = defaultRegion
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	store := &S3ObjectStorage{
		client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.UsePathStyle
			o.BaseEndpoint = aws.String(endpoint)
		}),
		bucket:    cfg.Bucket,
		endpoint:  endpoint,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Meant to
// run once at startup so uploads never race bucket creation.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		// Another instance may have created it between the head and the create.
		var owned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.logger.Info("Storage bucket created successfully", zap.String("bucket", s.bucket))
	return nil
}

// isNotFound matches missing-bucket and missing-key responses. Some
// S3-compatible services only signal not-found through the error code
// string, so the typed checks get a string fallback.
func isNotFound(err error) bool {
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchBucket) || errors.As(err, &noSuchKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey")
}

// Upload writes data to the bucket under the given storage key.
func (s *S3ObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(storageKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// Delete removes an object from storage.
func (s *S3ObjectStorage) Delete(ctx context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether an object is present in the bucket.
func (s *S3ObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(storageKey),
	})
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check object existence: %w", err)
	}
}

// PublicURL returns the public URL an uploaded object is served under.
// Without a configured public base URL it falls back to path-style
// addressing against the storage endpoint.
func (s *S3ObjectStorage) PublicURL(storageKey string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + storageKey
	}
	return s.endpoint + "/" + s.bucket + "/" + storageKey
}

// GetBucket returns the bucket name.
func (s *S3ObjectStorage) GetBucket() string {
	return s.bucket
}
