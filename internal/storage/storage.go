// Package storage stores implementation file blobs in an S3-compatible bucket.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/fx"

	"github.com/emergent-company/atlas/internal/config"
	"github.com/emergent-company/atlas/pkg/logger"
)

var Module = fx.Module("storage",
	fx.Provide(NewService),
	fx.Invoke(registerLifecycle),
)

var (
	// ErrNotConfigured is returned by every operation when no endpoint or credentials are set.
	ErrNotConfigured = errors.New("storage not configured")
	// ErrObjectNotFound is returned when the key does not exist. It is never retried.
	ErrObjectNotFound = errors.New("object not found")
)

// Service provides S3-compatible blob operations with retries on transient failures
type Service struct {
	client *s3.Client
	bucket string
	cfg    config.StorageConfig
	log    *slog.Logger
}

// NewService creates a storage service. An unconfigured service is returned
// disabled rather than failing startup.
func NewService(cfg *config.Config, log *slog.Logger) (*Service, error) {
	s := &Service{
		bucket: cfg.Storage.Bucket,
		cfg:    cfg.Storage,
		log:    log.With(logger.Scope("storage")),
	}
	if !cfg.Storage.IsConfigured() {
		s.log.Warn("storage service disabled - no configuration provided")
		return s, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Storage.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing is required for MinIO
	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
		o.UsePathStyle = true
	})

	s.log.Info("storage service initialized",
		slog.String("endpoint", cfg.Storage.Endpoint),
		slog.String("bucket", s.bucket),
	)
	return s, nil
}

func registerLifecycle(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !s.Enabled() {
				return nil
			}
			// A missing bucket is not fatal; uploads will report the failure.
			if err := s.EnsureBucket(ctx); err != nil {
				s.log.Warn("could not ensure storage bucket", slog.String("bucket", s.bucket), logger.Error(err))
			}
			return nil
		},
	})
}

// Enabled returns true if the storage service is properly configured
func (s *Service) Enabled() bool {
	return s.client != nil
}

// EnsureBucket creates the files bucket when it does not exist.
func (s *Service) EnsureBucket(ctx context.Context) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var nf *types.NotFound
	if !errors.As(err, &nf) {
		return fmt.Errorf("head bucket failed: %w", err)
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("create bucket failed: %w", err)
	}
	s.log.Info("storage bucket created", slog.String("bucket", s.bucket))
	return nil
}

// Put stores data under key, replacing any existing object.
func (s *Service) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	return s.retry(ctx, "put", key, func() error {
		input := &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(data),
			ContentLength: aws.Int64(int64(len(data))),
		}
		if contentType != "" {
			input.ContentType = aws.String(contentType)
		}
		_, err := s.client.PutObject(ctx, input)
		return err
	})
}

// Get opens the object stored under key. The caller closes the reader.
func (s *Service) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}
	var body io.ReadCloser
	err := s.retry(ctx, "get", key, func() error {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return notFound(err)
		}
		body = out.Body
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// Delete removes the object. Deleting a missing key succeeds.
func (s *Service) Delete(ctx context.Context, key string) error {
	if !s.Enabled() {
		return ErrNotConfigured
	}
	err := s.retry(ctx, "delete", key, func() error {
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return notFound(err)
	})
	if errors.Is(err, ErrObjectNotFound) {
		return nil
	}
	if err == nil {
		s.log.Debug("object deleted", slog.String("key", key))
	}
	return err
}

// Exists checks if an object exists in storage
func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	if !s.Enabled() {
		return false, ErrNotConfigured
	}
	err := s.retry(ctx, "head", key, func() error {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		return notFound(err)
	})
	if errors.Is(err, ErrObjectNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *Service) retry(ctx context.Context, op, key string, fn func() error) error {
	attempts := s.cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	err := retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.cfg.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrObjectNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warn("retrying storage operation",
				slog.String("op", op),
				slog.String("key", key),
				slog.Uint64("attempt", uint64(n+1)),
				logger.Error(err),
			)
		}),
	)
	if err != nil && !errors.Is(err, ErrObjectNotFound) {
		s.log.Error("storage operation failed", slog.String("op", op), slog.String("key", key), logger.Error(err))
		return fmt.Errorf("%s failed: %w", op, err)
	}
	return err
}

func notFound(err error) error {
	if err == nil {
		return nil
	}
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return ErrObjectNotFound
	}
	return err
}

// ObjectKey is the storage key of an implementation file:
// {implementationId}/{sanitized_filename}. Uploading the same name twice
// addresses the same object. Case is kept, so A.txt and a.txt are distinct.
func ObjectKey(implementationID, filename string) string {
	return implementationID + "/" + SanitizeFilename(filename)
}

var (
	unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)
	underscores = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename cleans a filename for storage
func SanitizeFilename(filename string) string {
	if filename == "" {
		return "unnamed"
	}

	sanitized := unsafeChars.ReplaceAllString(filename, "_")
	sanitized = underscores.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_")

	if len(sanitized) > 200 {
		sanitized = sanitized[:200]
	}
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
