// Package storage keeps request attachments in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/linskybing/simtrack/internal/config"
	minioSDK "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the subset of bucket operations attachments need.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type MinioStore struct {
	client *minioSDK.Client
	bucket string
}

// NewMinioStore connects to the configured endpoint and makes sure the bucket exists.
func NewMinioStore(ctx context.Context) (*MinioStore, error) {
	client, err := minioSDK.New(config.MinioEndpoint, &minioSDK.Options{
		Creds:  credentials.NewStaticV4(config.MinioAccessKey, config.MinioSecretKey, ""),
		Secure: config.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to minio: %w", err)
	}

	exists, err := client.BucketExists(ctx, config.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", config.MinioBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.MinioBucket, minioSDK.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", config.MinioBucket, err)
		}
		log.Printf("[Storage] bucket created: %s", config.MinioBucket)
	}

	return &MinioStore{client: client, bucket: config.MinioBucket}, nil
}

func (s *MinioStore) Put(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("object name cannot be empty")
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *MinioStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject is lazy; Stat surfaces a missing key before streaming starts.
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (s *MinioStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minioSDK.RemoveObjectOptions{})
}
