package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
	"go.uber.org/zap"
)

const gcsPublicHost = "https://storage.googleapis.com"

// GCSStorage stores blobs in a Google Cloud Storage bucket. Credentials come
// from Application Default Credentials.
type GCSStorage struct {
	client *gcs.Client
	bucket string
	logger *zap.Logger
}

// NewGCSStorage creates a client for bucket
func NewGCSStorage(ctx context.Context, bucket string, logger *zap.Logger) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	logger.Info("Google Cloud Storage initialized", zap.String("bucket", bucket))

	return &GCSStorage{client: client, bucket: bucket, logger: logger}, nil
}

// Store writes data to the object named key
func (s *GCSStorage) Store(ctx context.Context, key, contentType string, data io.Reader) (string, int64, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", 0, err
	}

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	size, err := io.Copy(w, data)
	if err != nil {
		_ = w.Close()
		return "", 0, fmt.Errorf("failed to upload object: %w", err)
	}
	// the object is committed on Close
	if err := w.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize object: %w", err)
	}

	return key, size, nil
}

// Open streams the object named key
func (s *GCSStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return r, nil
}

// Delete removes the object named key
func (s *GCSStorage) Delete(ctx context.Context, key string) error {
	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// URL returns the public object URL
func (s *GCSStorage) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", gcsPublicHost, s.bucket, key)
}

// Close releases the underlying client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
