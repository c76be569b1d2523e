package minio

// Package minio implements ports.DocumentStore against S3-compatible object
// storage. Document metadata stays in Postgres; only the bytes live here.

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// api is the subset of the MinIO client used by the store. Narrowing the
// surface keeps tests free of a real object storage server.
type api interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
}

// DocumentStore stores document bytes in a single bucket.
type DocumentStore struct {
	api    api
	bucket string
}

// NewDocumentStore wraps a MinIO client and ensures the bucket exists.
func NewDocumentStore(ctx context.Context, client *minio.Client, bucket string) (*DocumentStore, error) {
	return newDocumentStoreWithAPI(ctx, client, bucket)
}

func newDocumentStoreWithAPI(ctx context.Context, a api, bucket string) (*DocumentStore, error) {
	s := &DocumentStore{api: a, bucket: bucket}

	exists, err := a.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if makeErr := a.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); makeErr != nil {
			return nil, fmt.Errorf("create bucket: %w", makeErr)
		}
	}
	return s, nil
}

// Upload writes document bytes under the given key.
func (s *DocumentStore) Upload(ctx context.Context, key, contentType string, r io.Reader, size int64) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.api.PutObject(ctx, s.bucket, key, r, size, opts); err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

// Download returns a reader over the document bytes. The caller closes it.
func (s *DocumentStore) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.api.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object: %w", err)
	}
	return obj, nil
}

// Delete removes the document bytes.
func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	if err := s.api.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
