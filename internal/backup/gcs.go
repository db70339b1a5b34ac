package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
)

const uploadTimeout = 2 * time.Minute

// GCSStore uploads to a Cloud Storage bucket using Application Default Credentials.
type GCSStore struct {
	client *storage.Client
	bucket string
}

func NewGCSStore(ctx context.Context, bucket string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("copy backup to GCS writer: %w", err)
	}
	// Close finalizes the upload
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, name), nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
